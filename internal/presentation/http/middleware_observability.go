package httppresentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

const (
	headerRequestID   = echo.HeaderXRequestID
	headerTenantID    = "X-Tenant-ID"
	rateLimiterExpiry = 5 * time.Minute
)

// route is the registered path template, never the raw URL, so labels stay
// low-cardinality.
func route(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return "unknown"
}

// withTrace starts a server span, continuing a W3C trace context when the
// caller sent one.
func (s *Server) withTrace(next echo.HandlerFunc) echo.HandlerFunc {
	tracer := otel.Tracer("minishop.http")
	prop := otel.GetTextMapPropagator()
	return func(c echo.Context) error {
		r := c.Request()
		parent := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := tracer.Start(parent, r.Method+" "+route(c),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route(c)),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		c.SetRequest(r.WithContext(ctx))
		err := next(c)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// withRequestLogger puts a logger carrying request, tenant and trace ids
// into the request context and echoes X-Request-ID.
func (s *Server) withRequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		rid := r.Header.Get(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Response().Header().Set(headerRequestID, rid)

		fields := []observability.Field{observability.F("request_id", rid)}
		if tid := r.Header.Get(headerTenantID); tid != "" {
			fields = append(fields, observability.F("tenant_id", tid))
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		ctx := logctx.With(r.Context(), s.log.With(fields...))
		c.SetRequest(r.WithContext(ctx))
		return next(c)
	}
}

// withAccessLog renders errors itself so the final status is known, then
// records HTTP metrics and one http_access line.
func (s *Server) withAccessLog(next echo.HandlerFunc) echo.HandlerFunc {
	requests := s.tel.Metrics().Counter(observability.MHTTPRequests)
	durations := s.tel.Metrics().Histogram(observability.MHTTPRequestDuration)
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		lat := time.Since(start)

		r := c.Request()
		status := strconv.Itoa(c.Response().Status)
		labels := []observability.Label{
			observability.L("method", r.Method),
			observability.L("route", route(c)),
			observability.L("status", status),
		}
		requests.Add(1, labels...)
		durations.Observe(lat.Seconds(), labels...)

		logctx.FromOr(r.Context(), s.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", route(c)),
			observability.F("path", r.URL.Path),
			observability.F("status", c.Response().Status),
			observability.F("latency_ms", lat.Milliseconds()),
		)
		return nil
	}
}

// newRateLimiter limits each client IP to ratePerSecond with burst.
func newRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded", Kind: "rate_limited"})
		},
	})
}
