package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RawEventReaderPort reads sales figures recorded from order events. day is
// midnight UTC; implementations cover [day, day+24h).
type RawEventReaderPort interface {
	TotalRevenueForDay(ctx context.Context, day time.Time) (decimal.Decimal, error)
	TotalOrdersForDay(ctx context.Context, day time.Time) (int64, error)
}
