package notification

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

var (
	ErrUnknownChannel  = failure.Domain(failure.ModuleNotification, "unknown notification channel")
	ErrSubjectRequired = failure.Domain(failure.ModuleNotification, "email notifications need a subject")
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelSMS, ChannelPush:
		return c, nil
	}
	return "", ErrUnknownChannel
}

type Status string

const StatusSent Status = "sent"

type Notification struct {
	ID          string
	RecipientID string
	Channel     Channel
	Subject     string
	Body        string
	Status      Status
	SentAt      time.Time
}

func New(id, recipientID string, ch Channel, subject, body string) (*Notification, error) {
	if ch == ChannelEmail && subject == "" {
		return nil, ErrSubjectRequired
	}
	return &Notification{ID: id, RecipientID: recipientID, Channel: ch, Subject: subject, Body: body}, nil
}

func (n *Notification) MarkSent(now time.Time) {
	n.Status = StatusSent
	n.SentAt = now.UTC()
}

// Sender delivers a notification over its channel.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
