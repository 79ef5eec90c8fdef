package chat

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

var (
	ErrNoRecipients = failure.NotFound(failure.ModuleChat, "no one is listening on the conversation")
	ErrEmptyBody    = failure.Domain(failure.ModuleChat, "message body is empty")
)

type Status string

const (
	StatusDelivered Status = "delivered"
	StatusPending   Status = "pending"
)

type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	Status         Status
	SentAt         time.Time
}

func NewMessage(id, conversationID, senderID, body string, now time.Time) (*Message, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}
	return &Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		Status:         StatusPending,
		SentAt:         now.UTC(),
	}, nil
}

func (m *Message) MarkDelivered() { m.Status = StatusDelivered }

// MessageRepository keeps the conversation history, oldest first.
type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error)
}
