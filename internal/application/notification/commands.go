package notification

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/notification"
)

type SendNotificationParams struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Channel     string `json:"channel" validate:"required,oneof=email sms push"`
	Subject     string `json:"subject" validate:"max=200"`
	Body        string `json:"body" validate:"required,max=2000"`
}

type SendNotificationCommand struct {
	recipientID string
	channel     domain.Channel
	subject     string
	body        string
}

func NewSendNotificationCommand(p SendNotificationParams) (SendNotificationCommand, error) {
	if err := validate.Struct(failure.ModuleNotification, p); err != nil {
		return SendNotificationCommand{}, err
	}
	ch, err := domain.ParseChannel(p.Channel)
	if err != nil {
		return SendNotificationCommand{}, err
	}
	return SendNotificationCommand{recipientID: p.RecipientID, channel: ch, subject: p.Subject, body: p.Body}, nil
}

func (c SendNotificationCommand) RecipientID() string     { return c.recipientID }
func (c SendNotificationCommand) Channel() domain.Channel { return c.channel }
func (c SendNotificationCommand) Subject() string         { return c.subject }
func (c SendNotificationCommand) Body() string            { return c.body }
