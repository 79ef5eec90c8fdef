package logistics

import (
	"context"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

// LogisticsEventPublisher announces shipment lifecycle events.
type LogisticsEventPublisher interface {
	event.Publisher
}

// RateQuoter owns shipping cost policy.
type RateQuoter interface {
	Quote(ctx context.Context, carrier, address string) (money.Money, error)
}

type IDGenerator interface {
	NewID() string
	NewTrackingNumber() string
}
