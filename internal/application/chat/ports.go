package chat

import (
	"context"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/chat"
)

// DeliveryPort pushes a stored message to the conversation's live members.
type DeliveryPort interface {
	Deliver(ctx context.Context, m domain.Message) error
}

type IDGenerator interface {
	NewID() string
}
