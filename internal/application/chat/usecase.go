package chat

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/chat"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

const (
	UseCaseSend = "chat.send"
	UseCaseList = "chat.list"
)

type (
	SendMessageUseCase  = application.UseCase[SendMessageCommand, MessageDto]
	ListMessagesUseCase = application.UseCase[ListMessagesQuery, []MessageDto]
)

type SendMessage struct {
	repo     domain.MessageRepository
	delivery DeliveryPort
	ids      IDGenerator
	clock    clockwork.Clock
	tel      observability.Observability
}

func NewSendMessage(repo domain.MessageRepository, delivery DeliveryPort, ids IDGenerator, clock clockwork.Clock, tel observability.Observability) *SendMessage {
	return &SendMessage{repo: repo, delivery: delivery, ids: ids, clock: clock, tel: observability.OrNop(tel)}
}

// Execute tries live delivery, then stores the message with its delivery
// status. A failed delivery leaves the message pending in history instead
// of failing the send. A failed save after a successful delivery returns an
// error while listeners already hold a message that history lacks.
func (uc *SendMessage) Execute(ctx context.Context, cmd SendMessageCommand) (MessageDto, error) {
	m, err := domain.NewMessage(uc.ids.NewID(), cmd.ConversationID(), cmd.SenderID(), cmd.Body(), uc.clock.Now())
	if err != nil {
		return MessageDto{}, err
	}

	if err := uc.delivery.Deliver(ctx, *m); err != nil {
		logctx.FromOr(ctx, uc.tel.Logger()).Info("chat_delivery_deferred",
			observability.F("conversation_id", m.ConversationID),
			observability.F("message_id", m.ID),
			observability.F("error", err.Error()),
		)
	} else {
		m.MarkDelivered()
	}

	if err := uc.repo.Save(ctx, m); err != nil {
		return MessageDto{}, failure.FromPort(failure.ModuleChat, "save message", err)
	}
	return toDto(m), nil
}

// Send is Execute under the name chat clients use.
func (uc *SendMessage) Send(ctx context.Context, cmd SendMessageCommand) (MessageDto, error) {
	return uc.Execute(ctx, cmd)
}

type ListMessages struct {
	repo domain.MessageRepository
}

func NewListMessages(repo domain.MessageRepository) *ListMessages {
	return &ListMessages{repo: repo}
}

func (uc *ListMessages) Execute(ctx context.Context, q ListMessagesQuery) ([]MessageDto, error) {
	msgs, err := uc.repo.ListByConversation(ctx, q.ConversationID(), q.Limit())
	if err != nil {
		return nil, failure.FromPort(failure.ModuleChat, "list messages", err)
	}
	out := make([]MessageDto, 0, len(msgs))
	for i := range msgs {
		out = append(out, toDto(&msgs[i]))
	}
	return out, nil
}
