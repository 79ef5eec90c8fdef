package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

const spanPrefix = "UC."

const (
	OutcomeSuccess  = "success"
	OutcomeCanceled = "canceled"
	OutcomeUnknown  = "error"
)

// Outcome maps an error to the low-cardinality label used on use case metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	}
	if k := failure.KindOf(err); k != "" {
		return string(k)
	}
	return OutcomeUnknown
}

type instrumented[C any, R any] struct {
	name  string
	inner UseCase[C, R]

	tracer       observability.Tracer
	log          observability.Logger
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

// Instrument wraps uc with a span, RED metrics and a single use_case_done log
// line. name is the use case label, for example "order.place".
func Instrument[C any, R any](name string, uc UseCase[C, R], tel observability.Observability) UseCase[C, R] {
	tel = observability.OrNop(tel)
	m := tel.Metrics()
	return &instrumented[C, R]{
		name:         name,
		inner:        uc,
		tracer:       tel.Tracer(),
		log:          tel.Logger(),
		reqCounter:   m.Counter(observability.MUsecaseRequests),
		durHistogram: m.Histogram(observability.MUsecaseDuration),
	}
}

func (u *instrumented[C, R]) Execute(ctx context.Context, cmd C) (res R, err error) {
	logger := logctx.FromOr(ctx, u.log).With(observability.F("use_case", u.name))

	ctx, span := u.tracer.Start(ctx, spanPrefix+u.name,
		attribute.String("use_case", u.name),
	)
	start := time.Now()

	defer func() {
		lat := time.Since(start).Seconds()
		outcome := Outcome(err)
		statusText := strings.ToUpper(outcome)
		if err == nil {
			statusText = "OK"
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		u.reqCounter.Add(1,
			observability.L("use_case", u.name),
			observability.L("outcome", outcome),
		)
		u.durHistogram.Observe(lat, observability.L("use_case", u.name))

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
			if m := failure.ModuleOf(err); m != "" {
				fields = append(fields, observability.F("module", string(m)))
			}
		}

		switch failure.KindOf(err) {
		case failure.KindInfrastructure:
			logger.Error("use_case_done", fields...)
		default:
			logger.Info("use_case_done", fields...)
		}
	}()

	if err = ctx.Err(); err != nil {
		return res, err
	}
	return u.inner.Execute(ctx, cmd)
}
