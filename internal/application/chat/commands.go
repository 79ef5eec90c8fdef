package chat

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type SendMessageParams struct {
	ConversationID string `json:"conversation_id" validate:"required,max=64"`
	SenderID       string `json:"sender_id" validate:"required"`
	Body           string `json:"body" validate:"required,max=4000"`
}

type SendMessageCommand struct {
	conversationID string
	senderID       string
	body           string
}

func NewSendMessageCommand(p SendMessageParams) (SendMessageCommand, error) {
	if err := validate.Struct(failure.ModuleChat, p); err != nil {
		return SendMessageCommand{}, err
	}
	return SendMessageCommand{conversationID: p.ConversationID, senderID: p.SenderID, body: p.Body}, nil
}

func (c SendMessageCommand) ConversationID() string { return c.conversationID }
func (c SendMessageCommand) SenderID() string       { return c.senderID }
func (c SendMessageCommand) Body() string           { return c.body }

const DefaultHistoryLimit = 50

type ListMessagesParams struct {
	ConversationID string `json:"conversation_id" validate:"required,max=64"`
	Limit          int    `json:"limit" validate:"gte=0,lte=200"`
}

type ListMessagesQuery struct {
	conversationID string
	limit          int
}

// NewListMessagesQuery defaults a zero limit to DefaultHistoryLimit.
func NewListMessagesQuery(p ListMessagesParams) (ListMessagesQuery, error) {
	if err := validate.Struct(failure.ModuleChat, p); err != nil {
		return ListMessagesQuery{}, err
	}
	if p.Limit == 0 {
		p.Limit = DefaultHistoryLimit
	}
	return ListMessagesQuery{conversationID: p.ConversationID, limit: p.Limit}, nil
}

func (q ListMessagesQuery) ConversationID() string { return q.conversationID }
func (q ListMessagesQuery) Limit() int             { return q.limit }
