package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appreport "github.com/Zhima-Mochi/minishop-modules/internal/application/report"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	domorder "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
)

var _ appreport.RawEventReaderPort = (*RawEventReader)(nil)

const (
	eventPlaced    = "order.placed"
	eventCancelled = "order.cancelled"
)

// Placed orders of the day, in the report currency, that were never
// cancelled.
const (
	revenueForDaySQL = `
SELECT COALESCE(SUM(p.amount), 0)::text
FROM sales_events p
WHERE p.event = 'order.placed'
  AND p.occurred_at >= $1 AND p.occurred_at < $2
  AND p.currency = $3
  AND NOT EXISTS (
	SELECT 1 FROM sales_events c
	WHERE c.order_id = p.order_id AND c.event = 'order.cancelled')`

	ordersForDaySQL = `
SELECT COUNT(*)
FROM sales_events p
WHERE p.event = 'order.placed'
  AND p.occurred_at >= $1 AND p.occurred_at < $2
  AND p.currency = $3
  AND NOT EXISTS (
	SELECT 1 FROM sales_events c
	WHERE c.order_id = p.order_id AND c.event = 'order.cancelled')`

	insertEventSQL = `
INSERT INTO sales_events (order_id, event, amount, currency, occurred_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (order_id, event) DO NOTHING`
)

// RawEventReader sums the sales log for one currency.
type RawEventReader struct {
	q        Querier
	currency string
}

func NewRawEventReader(q Querier, currency string) *RawEventReader {
	return &RawEventReader{q: q, currency: strings.ToUpper(currency)}
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func (r *RawEventReader) TotalRevenueForDay(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	from, to := dayBounds(day)
	var raw string
	if err := r.q.QueryRow(ctx, revenueForDaySQL, from, to, r.currency).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse revenue %q: %w", raw, err)
	}
	return d, nil
}

func (r *RawEventReader) TotalOrdersForDay(ctx context.Context, day time.Time) (int64, error) {
	from, to := dayBounds(day)
	var n int64
	if err := r.q.QueryRow(ctx, ordersForDaySQL, from, to, r.currency).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// SalesEventWriter appends order events to sales_events. Redelivered events
// are ignored by the primary key.
type SalesEventWriter struct {
	q Querier
}

func NewSalesEventWriter(q Querier) *SalesEventWriter {
	return &SalesEventWriter{q: q}
}

func (w *SalesEventWriter) Subscribe(sub event.Subscriber) {
	sub.Subscribe(eventPlaced, w.Handle)
	sub.Subscribe(eventCancelled, w.Handle)
}

func (w *SalesEventWriter) Handle(ctx context.Context, e event.Event) error {
	var (
		orderID, total, currency string
		at                       time.Time
	)
	switch ev := e.(type) {
	case domorder.OrderPlacedEvent:
		orderID, total, currency, at = ev.OrderID, ev.Total, ev.Currency, ev.OccurredAt
	case domorder.OrderCancelledEvent:
		orderID, total, currency, at = ev.OrderID, ev.Total, ev.Currency, ev.OccurredAt
	default:
		return nil
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return fmt.Errorf("failed to parse order total %q: %w", total, err)
	}
	if _, err := w.q.Exec(ctx, insertEventSQL, orderID, e.EventName(), amount.String(), strings.ToUpper(currency), at.UTC()); err != nil {
		return fmt.Errorf("failed to record %s for order %s: %w", e.EventName(), orderID, err)
	}
	return nil
}
