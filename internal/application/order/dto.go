package order

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
)

type OrderLineDto struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type OrderDto struct {
	OrderID      string         `json:"order_id"`
	CustomerID   string         `json:"customer_id"`
	Status       domain.Status  `json:"status"`
	Lines        []OrderLineDto `json:"lines"`
	Total        string         `json:"total"`
	Currency     string         `json:"currency"`
	CancelReason string         `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func toDto(o *domain.Order) OrderDto {
	lines := make([]OrderLineDto, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineDto{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(),
			LineTotal: l.Total().StringFixed(),
		})
	}
	return OrderDto{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		Status:       o.Status,
		Lines:        lines,
		Total:        o.Total.StringFixed(),
		Currency:     o.Total.Currency(),
		CancelReason: o.CancelReason,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
