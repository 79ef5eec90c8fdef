package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreport "github.com/Zhima-Mochi/minishop-modules/internal/application/report"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/observabilitytest"
	"github.com/Zhima-Mochi/minishop-modules/internal/pkg/retry"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// fakeReader serves fixed figures per day and fails the first failures calls.
type fakeReader struct {
	revenue  map[string]string
	orders   map[string]int64
	failures int
	calls    int
}

func (f *fakeReader) TotalRevenueForDay(_ context.Context, day time.Time) (decimal.Decimal, error) {
	f.calls++
	if f.calls <= f.failures {
		return decimal.Zero, errors.New("connection reset")
	}
	v, ok := f.revenue[day.Format(appreport.DateLayout)]
	if !ok {
		return decimal.Zero, nil
	}
	return decimal.RequireFromString(v), nil
}

func (f *fakeReader) TotalOrdersForDay(_ context.Context, day time.Time) (int64, error) {
	return f.orders[day.Format(appreport.DateLayout)], nil
}

func noWait() appreport.Option { return appreport.WithRetry(retry.Policy{MaxAttempts: 3}) }

func TestNewDailySalesQuery(t *testing.T) {
	q, err := appreport.NewDailySalesQuery(appreport.DailySalesParams{Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), q.Date())

	for _, bad := range []string{"", "2024-13-01", "01/05/2024"} {
		_, err := appreport.NewDailySalesQuery(appreport.DailySalesParams{Date: bad})
		assert.Equal(t, failure.KindValidation, failure.KindOf(err), bad)
	}
}

func TestNewRevenueRangeQuery(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		days     int
		wantErr  bool
	}{
		{name: "single day", from: "2024-05-01", to: "2024-05-01", days: 1},
		{name: "leap year", from: "2024-01-01", to: "2024-12-31", days: 366},
		{name: "reversed", from: "2024-05-02", to: "2024-05-01", wantErr: true},
		{name: "too long", from: "2023-01-01", to: "2024-01-02", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := appreport.NewRevenueRangeQuery(appreport.RevenueRangeParams{From: tt.from, To: tt.to})
			if tt.wantErr {
				assert.Equal(t, failure.KindValidation, failure.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.days, q.Days())
		})
	}
}

func TestDailySales(t *testing.T) {
	r := &fakeReader{
		revenue:  map[string]string{"2024-05-01": "12.5"},
		orders:   map[string]int64{"2024-05-01": 3},
		failures: 2,
	}
	rec := observabilitytest.New()
	uc := appreport.NewDailySales(r, clockwork.NewFakeClockAt(now), rec, noWait())
	q, _ := appreport.NewDailySalesQuery(appreport.DailySalesParams{Date: "2024-05-01"})

	got, err := uc.Execute(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, appreport.KindDailySales, got.Kind)
	assert.Equal(t, now, got.GeneratedAt)
	require.NotNil(t, got.Daily)
	assert.Equal(t, appreport.DailySalesReport{Date: "2024-05-01", Orders: 3, Revenue: "12.50", Currency: "USD"}, *got.Daily)
	assert.Nil(t, got.Revenue)

	_, ok := rec.Find("report_read_retry")
	assert.True(t, ok)
}

func TestDailySales_ExhaustedIsInfrastructure(t *testing.T) {
	r := &fakeReader{failures: 10}
	uc := appreport.NewDailySales(r, clockwork.NewFakeClockAt(now), nil, noWait())
	q, _ := appreport.NewDailySalesQuery(appreport.DailySalesParams{Date: "2024-05-01"})

	_, err := uc.Execute(context.Background(), q)
	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))
	assert.Equal(t, failure.ModuleReport, failure.ModuleOf(err))
	assert.Equal(t, 3, r.calls)
}

func TestRevenueRange(t *testing.T) {
	r := &fakeReader{
		revenue: map[string]string{"2024-05-01": "10", "2024-05-03": "5.25"},
		orders:  map[string]int64{"2024-05-01": 2, "2024-05-03": 1},
	}
	uc := appreport.NewRevenueRange(r, clockwork.NewFakeClockAt(now), nil, noWait(), appreport.WithCurrency("eur"))
	q, err := appreport.NewRevenueRangeQuery(appreport.RevenueRangeParams{From: "2024-05-01", To: "2024-05-03"})
	require.NoError(t, err)

	got, err := uc.Execute(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, got.Revenue)
	agg := got.Revenue
	assert.Equal(t, "15.25", agg.TotalRevenue)
	assert.Equal(t, int64(3), agg.TotalOrders)
	assert.Equal(t, "EUR", agg.Currency)
	require.Len(t, agg.Days, 3)
	assert.Equal(t, appreport.DailySalesReport{Date: "2024-05-02", Orders: 0, Revenue: "0.00", Currency: "EUR"}, agg.Days[1])
}

func TestRevenueRange_CanceledContext(t *testing.T) {
	uc := appreport.NewRevenueRange(&fakeReader{}, clockwork.NewFakeClockAt(now), nil, noWait())
	q, _ := appreport.NewRevenueRangeQuery(appreport.RevenueRangeParams{From: "2024-05-01", To: "2024-05-03"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, q)
	assert.ErrorIs(t, err, context.Canceled)
}
