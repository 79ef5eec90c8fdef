package order_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func lines() []order.Line {
	return []order.Line{
		{ProductID: "p1", Quantity: 2, UnitPrice: money.MustParse("5.00", "USD")},
		{ProductID: "p2", Quantity: 1, UnitPrice: money.MustParse("1.50", "USD")},
	}
}

func TestNew(t *testing.T) {
	o, err := order.New("o1", "u1", lines(), now)
	require.NoError(t, err)

	assert.Equal(t, order.StatusPlaced, o.Status)
	assert.Equal(t, "11.50", o.Total.StringFixed())
	assert.Equal(t, "USD", o.Total.Currency())
}

func TestNew_Rules(t *testing.T) {
	_, err := order.New("o1", "u1", nil, now)
	assert.ErrorIs(t, err, order.ErrNoLines)

	bad := lines()
	bad[1].Quantity = 0
	_, err = order.New("o1", "u1", bad, now)
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	mixed := lines()
	mixed[1].UnitPrice = money.MustParse("1", "EUR")
	_, err = order.New("o1", "u1", mixed, now)
	assert.ErrorIs(t, err, order.ErrMixedCurrency)
}

func TestLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(o *order.Order)
		act     func(o *order.Order) error
		want    order.Status
		wantErr error
	}{
		{
			name: "cancel placed",
			act:  func(o *order.Order) error { return o.Cancel("changed mind", now) },
			want: order.StatusCancelled,
		},
		{
			name: "complete placed",
			act:  func(o *order.Order) error { return o.Complete(now) },
			want: order.StatusCompleted,
		},
		{
			name:    "cancel needs reason",
			act:     func(o *order.Order) error { return o.Cancel("", now) },
			want:    order.StatusPlaced,
			wantErr: order.ErrCancellationNeedsReason,
		},
		{
			name:    "cancel cancelled",
			prepare: func(o *order.Order) { _ = o.Cancel("first", now) },
			act:     func(o *order.Order) error { return o.Cancel("again", now) },
			want:    order.StatusCancelled,
			wantErr: order.ErrInvalidStateTransition,
		},
		{
			name:    "cancel completed",
			prepare: func(o *order.Order) { _ = o.Complete(now) },
			act:     func(o *order.Order) error { return o.Cancel("late", now) },
			want:    order.StatusCompleted,
			wantErr: order.ErrInvalidStateTransition,
		},
		{
			name:    "complete cancelled",
			prepare: func(o *order.Order) { _ = o.Cancel("first", now) },
			act:     func(o *order.Order) error { return o.Complete(now) },
			want:    order.StatusCancelled,
			wantErr: order.ErrInvalidStateTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := order.New("o1", "u1", lines(), now)
			require.NoError(t, err)
			if tt.prepare != nil {
				tt.prepare(o)
			}

			err = tt.act(o)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, o.Status)
		})
	}
}

func TestEvents(t *testing.T) {
	o, err := order.New("o1", "u1", lines(), now)
	require.NoError(t, err)
	placed := order.NewOrderPlacedEvent(o)
	assert.Equal(t, "order.placed", placed.EventName())
	assert.Equal(t, "11.50", placed.Total)

	require.NoError(t, o.Cancel("oops", now.Add(time.Hour)))
	cancelled := order.NewOrderCancelledEvent(o)
	assert.Equal(t, "order.cancelled", cancelled.EventName())
	assert.Equal(t, "oops", cancelled.Reason)
	assert.Equal(t, now.Add(time.Hour), cancelled.OccurredAt)
}

func TestNewDomainError(t *testing.T) {
	err := order.NewDomainError("order is locked")
	assert.Equal(t, "order is locked", err.Message())
	assert.Equal(t, failure.ModuleOrder, err.Module)
	assert.Equal(t, failure.KindDomain, err.Kind)
}
