package application

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

const (
	publishPeer    = "outbox"
	PublishTimeout = 300 * time.Millisecond
)

// Publish hands e to p with a short timeout and records the call as an
// external request. Publication is best effort: the error is logged and
// returned so the caller can decide, but state already saved stays saved.
func Publish(ctx context.Context, p event.Publisher, e event.Event, tel observability.Observability) error {
	if p == nil || e == nil {
		return nil
	}
	tel = observability.OrNop(tel)

	pubCtx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()

	start := time.Now()
	outcome := "success"
	err := p.Publish(pubCtx, e)
	if err == nil && pubCtx.Err() != nil {
		err = pubCtx.Err()
	}
	if err != nil {
		outcome = "error"
		if pubCtx.Err() != nil {
			outcome = "canceled"
		}
		logctx.FromOr(ctx, tel.Logger()).Warn("event_publish_failed",
			observability.F("event", e.EventName()),
			observability.F("error", err.Error()),
		)
	}

	m := tel.Metrics()
	m.Counter(observability.MExternalRequests).Add(1,
		observability.L("peer", publishPeer),
		observability.L("endpoint", e.EventName()),
		observability.L("outcome", outcome),
	)
	m.Histogram(observability.MExternalRequestDuration).Observe(time.Since(start).Seconds(),
		observability.L("peer", publishPeer),
		observability.L("endpoint", e.EventName()),
	)
	return err
}
