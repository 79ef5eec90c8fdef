package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-modules/internal/pkg/retry"
)

const (
	UseCaseDailySales   = "report.daily_sales"
	UseCaseRevenueRange = "report.revenue_range"
)

type (
	DailySalesUseCase   = application.UseCase[DailySalesQuery, ReportDto]
	RevenueRangeUseCase = application.UseCase[RevenueRangeQuery, ReportDto]
)

// DefaultRetry is used for reads unless overridden with WithRetry.
var DefaultRetry = retry.Policy{
	MaxAttempts:    3,
	InitialBackoff: 50 * time.Millisecond,
	MaxBackoff:     500 * time.Millisecond,
}

// DefaultCurrency labels report figures unless overridden with WithCurrency.
const DefaultCurrency = "USD"

type Option func(*reader)

// WithRetry replaces the retry policy for port reads.
func WithRetry(p retry.Policy) Option {
	return func(r *reader) { r.policy = p }
}

// WithCurrency names the currency the port's figures are kept in. It must
// match the currency the port was built for.
func WithCurrency(code string) Option {
	return func(r *reader) { r.currency = strings.ToUpper(code) }
}

// reader fetches one day's figures, retrying infrastructure failures.
type reader struct {
	port     RawEventReaderPort
	policy   retry.Policy
	currency string
	tel      observability.Observability
}

func newReader(port RawEventReaderPort, clock clockwork.Clock, tel observability.Observability, opts []Option) reader {
	r := reader{port: port, policy: DefaultRetry, currency: DefaultCurrency, tel: observability.OrNop(tel)}
	for _, o := range opts {
		o(&r)
	}
	if r.policy.Clock == nil {
		r.policy.Clock = clock
	}
	return r
}

type dayFigures struct {
	orders  int64
	revenue decimal.Decimal
}

func classify(err error) retry.Action {
	if errors.Is(err, context.Canceled) {
		return retry.Stop
	}
	if f, ok := failure.As(err); ok && f.Kind != failure.KindInfrastructure {
		return retry.Stop
	}
	return retry.Retry
}

func (r reader) day(ctx context.Context, day time.Time) (DailySalesReport, dayFigures, error) {
	policy := r.policy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		logctx.FromOr(ctx, r.tel.Logger()).Warn("report_read_retry",
			observability.F("day", day.Format(DateLayout)),
			observability.F("attempt", attempt),
			observability.F("backoff", backoff.String()),
			observability.F("error", err.Error()),
		)
	}

	figs, err := retry.Do(ctx, policy, classify, func(ctx context.Context) (dayFigures, error) {
		revenue, err := r.port.TotalRevenueForDay(ctx, day)
		if err != nil {
			return dayFigures{}, err
		}
		orders, err := r.port.TotalOrdersForDay(ctx, day)
		if err != nil {
			return dayFigures{}, err
		}
		return dayFigures{orders: orders, revenue: revenue}, nil
	})
	if err != nil {
		return DailySalesReport{}, dayFigures{}, failure.FromPort(failure.ModuleReport, "read sales ledger", retry.Cause(err))
	}
	return DailySalesReport{
		Date:     day.Format(DateLayout),
		Orders:   figs.orders,
		Revenue:  figs.revenue.StringFixed(2),
		Currency: r.currency,
	}, figs, nil
}

type DailySales struct {
	reader reader
	clock  clockwork.Clock
}

func NewDailySales(port RawEventReaderPort, clock clockwork.Clock, tel observability.Observability, opts ...Option) *DailySales {
	return &DailySales{reader: newReader(port, clock, tel, opts), clock: clock}
}

func (uc *DailySales) Execute(ctx context.Context, q DailySalesQuery) (ReportDto, error) {
	rep, _, err := uc.reader.day(ctx, q.Date())
	if err != nil {
		return ReportDto{}, err
	}
	return ReportDto{Kind: KindDailySales, GeneratedAt: uc.clock.Now().UTC(), Daily: &rep}, nil
}

type RevenueRange struct {
	reader reader
	clock  clockwork.Clock
}

func NewRevenueRange(port RawEventReaderPort, clock clockwork.Clock, tel observability.Observability, opts ...Option) *RevenueRange {
	return &RevenueRange{reader: newReader(port, clock, tel, opts), clock: clock}
}

// Execute aggregates the range one day at a time and fails as a whole if
// any day cannot be read.
func (uc *RevenueRange) Execute(ctx context.Context, q RevenueRangeQuery) (ReportDto, error) {
	agg := RevenueAggregation{
		From:     q.From().Format(DateLayout),
		To:       q.To().Format(DateLayout),
		Currency: uc.reader.currency,
		Days:     make([]DailySalesReport, 0, q.Days()),
	}
	total := decimal.Zero
	for day := q.From(); !day.After(q.To()); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return ReportDto{}, err
		}
		rep, figs, err := uc.reader.day(ctx, day)
		if err != nil {
			return ReportDto{}, err
		}
		agg.Days = append(agg.Days, rep)
		agg.TotalOrders += figs.orders
		total = total.Add(figs.revenue)
	}
	agg.TotalRevenue = total.StringFixed(2)
	return ReportDto{Kind: KindRevenueRange, GeneratedAt: uc.clock.Now().UTC(), Revenue: &agg}, nil
}
