package memory

import (
	"context"
	"sync"

	domnotif "github.com/Zhima-Mochi/minishop-modules/internal/domain/notification"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

var _ domnotif.Sender = (*LogSender)(nil)

// LogSender writes notifications to the log and keeps them for inspection
// instead of calling a real provider.
type LogSender struct {
	log observability.Logger

	mu   sync.Mutex
	sent []domnotif.Notification
}

func NewLogSender(logger observability.Logger) *LogSender {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &LogSender{log: logger.With(observability.F("component", "notification_sender"))}
}

func (s *LogSender) Send(ctx context.Context, n domnotif.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logctx.FromOr(ctx, s.log).Info("notification_sent",
		observability.F("notification_id", n.ID),
		observability.F("recipient_id", n.RecipientID),
		observability.F("channel", string(n.Channel)),
	)
	s.mu.Lock()
	s.sent = append(s.sent, n)
	s.mu.Unlock()
	return nil
}

func (s *LogSender) Sent() []domnotif.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domnotif.Notification(nil), s.sent...)
}
