package notification

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/notification"
)

const UseCaseSend = "notification.send"

type SendNotificationUseCase = application.UseCase[SendNotificationCommand, NotificationResultDto]

type IDGenerator interface {
	NewID() string
}

type SendNotification struct {
	sender domain.Sender
	ids    IDGenerator
	clock  clockwork.Clock
}

func NewSendNotification(sender domain.Sender, ids IDGenerator, clock clockwork.Clock) *SendNotification {
	return &SendNotification{sender: sender, ids: ids, clock: clock}
}

func (uc *SendNotification) Execute(ctx context.Context, cmd SendNotificationCommand) (NotificationResultDto, error) {
	n, err := domain.New(uc.ids.NewID(), cmd.RecipientID(), cmd.Channel(), cmd.Subject(), cmd.Body())
	if err != nil {
		return NotificationResultDto{}, err
	}
	if err := uc.sender.Send(ctx, *n); err != nil {
		return NotificationResultDto{}, failure.FromPort(failure.ModuleNotification, "send "+string(n.Channel), err)
	}
	n.MarkSent(uc.clock.Now())
	return NotificationResultDto{NotificationID: n.ID, Channel: n.Channel, Status: n.Status, SentAt: n.SentAt}, nil
}
