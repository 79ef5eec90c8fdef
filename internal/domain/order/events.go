package order

import "time"

// OrderPlacedEvent is emitted once a new order is stored.
type OrderPlacedEvent struct {
	OrderID    string
	CustomerID string
	Total      string
	Currency   string
	Lines      int
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Total:      o.Total.StringFixed(),
		Currency:   o.Total.Currency(),
		Lines:      len(o.Lines),
		OccurredAt: o.CreatedAt,
	}
}

// OrderCancelledEvent is emitted when a placed order is cancelled.
type OrderCancelledEvent struct {
	OrderID    string
	CustomerID string
	Total      string
	Currency   string
	Reason     string
	OccurredAt time.Time
}

func (OrderCancelledEvent) EventName() string { return "order.cancelled" }

func NewOrderCancelledEvent(o *Order) OrderCancelledEvent {
	return OrderCancelledEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Total:      o.Total.StringFixed(),
		Currency:   o.Total.Currency(),
		Reason:     o.CancelReason,
		OccurredAt: o.UpdatedAt,
	}
}
