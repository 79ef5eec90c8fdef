package order

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type OrderLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	UnitPrice string `json:"unit_price" validate:"money"`
	Currency  string `json:"currency" validate:"iso4217"`
}

type PlaceOrderParams struct {
	CustomerID     string      `json:"customer_id" validate:"required"`
	IdempotencyKey string      `json:"idempotency_key" validate:"omitempty,max=128"`
	Lines          []OrderLine `json:"lines" validate:"required,min=1,dive"`
}

// PlaceOrderCommand carries a slice, so compare commands with Equal.
type PlaceOrderCommand struct {
	customerID     string
	idempotencyKey string
	lines          []OrderLine
}

func NewPlaceOrderCommand(p PlaceOrderParams) (PlaceOrderCommand, error) {
	if err := validate.Struct(failure.ModuleOrder, p); err != nil {
		return PlaceOrderCommand{}, err
	}
	return PlaceOrderCommand{
		customerID:     p.CustomerID,
		idempotencyKey: p.IdempotencyKey,
		lines:          append([]OrderLine(nil), p.Lines...),
	}, nil
}

func (c PlaceOrderCommand) CustomerID() string     { return c.customerID }
func (c PlaceOrderCommand) IdempotencyKey() string { return c.idempotencyKey }

// Lines returns a copy of the order lines.
func (c PlaceOrderCommand) Lines() []OrderLine { return append([]OrderLine(nil), c.lines...) }

func (c PlaceOrderCommand) Equal(o PlaceOrderCommand) bool {
	if c.customerID != o.customerID || c.idempotencyKey != o.idempotencyKey || len(c.lines) != len(o.lines) {
		return false
	}
	for i := range c.lines {
		if c.lines[i] != o.lines[i] {
			return false
		}
	}
	return true
}

type CancelOrderParams struct {
	OrderID string `json:"order_id" validate:"required"`
	Reason  string `json:"reason" validate:"required,max=500"`
}

type CancelOrderCommand struct {
	orderID string
	reason  string
}

func NewCancelOrderCommand(p CancelOrderParams) (CancelOrderCommand, error) {
	if err := validate.Struct(failure.ModuleOrder, p); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: p.OrderID, reason: p.Reason}, nil
}

func (c CancelOrderCommand) OrderID() string { return c.orderID }
func (c CancelOrderCommand) Reason() string  { return c.reason }

type GetOrderParams struct {
	OrderID string `json:"order_id" validate:"required"`
}

type GetOrderQuery struct {
	orderID string
}

func NewGetOrderQuery(p GetOrderParams) (GetOrderQuery, error) {
	if err := validate.Struct(failure.ModuleOrder, p); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: p.OrderID}, nil
}

func (q GetOrderQuery) OrderID() string { return q.orderID }
