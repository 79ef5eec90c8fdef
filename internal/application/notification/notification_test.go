package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotif "github.com/Zhima-Mochi/minishop-modules/internal/application/notification"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/notification"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
)

type fixedID string

func (f fixedID) NewID() string { return string(f) }

var at = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewSendNotificationCommand(t *testing.T) {
	tests := []struct {
		name    string
		params  appnotif.SendNotificationParams
		wantErr failure.Kind
	}{
		{name: "push", params: appnotif.SendNotificationParams{RecipientID: "u1", Channel: "push", Body: "shipped"}},
		{name: "email", params: appnotif.SendNotificationParams{RecipientID: "u1", Channel: "email", Subject: "Hi", Body: "shipped"}},
		{name: "unknown channel", params: appnotif.SendNotificationParams{RecipientID: "u1", Channel: "fax", Body: "x"}, wantErr: failure.KindValidation},
		{name: "missing body", params: appnotif.SendNotificationParams{RecipientID: "u1", Channel: "sms"}, wantErr: failure.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := appnotif.NewSendNotificationCommand(tt.params)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, failure.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.params.Channel, string(cmd.Channel()))
		})
	}
}

func TestSendNotification(t *testing.T) {
	sender := memory.NewLogSender(nil)
	uc := appnotif.NewSendNotification(sender, fixedID("n1"), clockwork.NewFakeClockAt(at))
	cmd, err := appnotif.NewSendNotificationCommand(appnotif.SendNotificationParams{RecipientID: "u1", Channel: "sms", Body: "code 1234"})
	require.NoError(t, err)

	got, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, appnotif.NotificationResultDto{NotificationID: "n1", Channel: domain.ChannelSMS, Status: domain.StatusSent, SentAt: at}, got)
	require.Len(t, sender.Sent(), 1)
	assert.Equal(t, "u1", sender.Sent()[0].RecipientID)
}

func TestSendNotification_EmailWithoutSubject(t *testing.T) {
	uc := appnotif.NewSendNotification(memory.NewLogSender(nil), fixedID("n1"), clockwork.NewFakeClockAt(at))
	cmd, err := appnotif.NewSendNotificationCommand(appnotif.SendNotificationParams{RecipientID: "u1", Channel: "email", Body: "x"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrSubjectRequired)
}

type downSender struct{}

func (downSender) Send(context.Context, domain.Notification) error { return errors.New("smtp timeout") }

func TestSendNotification_SenderFailure(t *testing.T) {
	uc := appnotif.NewSendNotification(downSender{}, fixedID("n1"), clockwork.NewFakeClockAt(at))
	cmd, _ := appnotif.NewSendNotificationCommand(appnotif.SendNotificationParams{RecipientID: "u1", Channel: "push", Body: "x"})

	_, err := uc.Execute(context.Background(), cmd)
	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))
	assert.Contains(t, err.Error(), "send push failed")
}
