package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	appreport "github.com/Zhima-Mochi/minishop-modules/internal/application/report"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	domorder "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
)

var _ appreport.RawEventReaderPort = (*SalesLedger)(nil)

type dayTotals struct {
	orders  int64
	revenue decimal.Decimal
}

type placedOrder struct {
	day   string
	total decimal.Decimal
}

// SalesLedger projects order events into per-day totals for one currency.
// Orders in other currencies are not booked. A cancellation is booked
// against the day its order was placed.
type SalesLedger struct {
	currency string

	mu     sync.RWMutex
	days   map[string]dayTotals
	placed map[string]placedOrder
}

func NewSalesLedger(currency string) *SalesLedger {
	return &SalesLedger{
		currency: strings.ToUpper(currency),
		days:     make(map[string]dayTotals),
		placed:   make(map[string]placedOrder),
	}
}

// Subscribe registers the ledger for the order events it projects.
func (l *SalesLedger) Subscribe(sub event.Subscriber) {
	sub.Subscribe(domorder.OrderPlacedEvent{}.EventName(), l.Handle)
	sub.Subscribe(domorder.OrderCancelledEvent{}.EventName(), l.Handle)
}

func (l *SalesLedger) Handle(_ context.Context, e event.Event) error {
	switch ev := e.(type) {
	case domorder.OrderPlacedEvent:
		return l.recordPlaced(ev)
	case domorder.OrderCancelledEvent:
		return l.recordCancelled(ev)
	}
	return nil
}

func (l *SalesLedger) recordPlaced(ev domorder.OrderPlacedEvent) error {
	if !strings.EqualFold(ev.Currency, l.currency) {
		return nil
	}
	total, err := decimal.NewFromString(ev.Total)
	if err != nil {
		return fmt.Errorf("sales ledger: order %s total %q: %w", ev.OrderID, ev.Total, err)
	}
	day := ev.OccurredAt.UTC().Format(appreport.DateLayout)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.placed[ev.OrderID]; seen {
		return nil
	}
	l.placed[ev.OrderID] = placedOrder{day: day, total: total}
	t := l.days[day]
	t.orders++
	t.revenue = t.revenue.Add(total)
	l.days[day] = t
	return nil
}

func (l *SalesLedger) recordCancelled(ev domorder.OrderCancelledEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.placed[ev.OrderID]
	if !ok {
		return nil
	}
	delete(l.placed, ev.OrderID)
	t := l.days[p.day]
	t.orders--
	t.revenue = t.revenue.Sub(p.total)
	l.days[p.day] = t
	return nil
}

func (l *SalesLedger) TotalRevenueForDay(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.days[day.UTC().Format(appreport.DateLayout)].revenue, nil
}

func (l *SalesLedger) TotalOrdersForDay(ctx context.Context, day time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.days[day.UTC().Format(appreport.DateLayout)].orders, nil
}
