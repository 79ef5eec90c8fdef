package chat

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/chat"
)

type MessageDto struct {
	MessageID      string        `json:"message_id"`
	ConversationID string        `json:"conversation_id"`
	SenderID       string        `json:"sender_id"`
	Body           string        `json:"body"`
	Status         domain.Status `json:"status"`
	SentAt         time.Time     `json:"sent_at"`
}

func toDto(m *domain.Message) MessageDto {
	return MessageDto{
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		Status:         m.Status,
		SentAt:         m.SentAt,
	}
}
