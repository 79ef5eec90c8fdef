package order

import (
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var (
	ErrNotFound                = failure.NotFound(failure.ModuleOrder, "order not found")
	ErrConflict                = failure.Conflict(failure.ModuleOrder, "order already exists")
	ErrVersionConflict         = failure.Conflict(failure.ModuleOrder, "order was modified concurrently")
	ErrNoLines                 = failure.Domain(failure.ModuleOrder, "order needs at least one line")
	ErrInvalidQuantity         = failure.Domain(failure.ModuleOrder, "quantity must be greater than zero")
	ErrMixedCurrency           = failure.Domain(failure.ModuleOrder, "order lines must share one currency")
	ErrInvalidStateTransition  = failure.Domain(failure.ModuleOrder, "invalid order state transition")
	ErrCancellationNeedsReason = failure.Domain(failure.ModuleOrder, "cancellation reason is required")
)

// NewDomainError builds an order rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleOrder, msg)
}

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Line struct {
	ProductID string
	Quantity  int
	UnitPrice money.Money
}

func (l Line) Total() money.Money { return l.UnitPrice.Mul(int64(l.Quantity)) }

// Order is a placed purchase. Version is the stored revision; Update only
// succeeds against it.
type Order struct {
	ID             string
	CustomerID     string
	IdempotencyKey string
	Lines          []Line
	Total          money.Money
	Status         Status
	CancelReason   string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func New(id, customerID string, lines []Line, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	total, err := money.Zero(lines[0].UnitPrice.Currency())
	if err != nil {
		return nil, NewDomainError(err.Error())
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if total, err = total.Add(l.Total()); err != nil {
			return nil, ErrMixedCurrency
		}
	}

	now = now.UTC()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Lines:      append([]Line(nil), lines...),
		Total:      total,
		Status:     StatusPlaced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Cancel moves a placed order to cancelled.
func (o *Order) Cancel(reason string, now time.Time) error {
	if reason == "" {
		return ErrCancellationNeedsReason
	}
	next, err := stateOf(o.Status).OnCancel(o, reason)
	if err != nil {
		return err
	}
	o.Status = next.Status()
	o.touch(now)
	return nil
}

// Complete moves a placed order to completed.
func (o *Order) Complete(now time.Time) error {
	next, err := stateOf(o.Status).OnComplete(o)
	if err != nil {
		return err
	}
	o.Status = next.Status()
	o.touch(now)
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

func (o *Order) touch(now time.Time) {
	o.UpdatedAt = now.UTC()
}
