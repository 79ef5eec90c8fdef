package cart

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
)

type CartItemDto struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type CartDto struct {
	CartID     string        `json:"cart_id"`
	CustomerID string        `json:"customer_id"`
	Currency   string        `json:"currency"`
	Items      []CartItemDto `json:"items"`
	Total      string        `json:"total"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func toDto(c *domain.Cart) CartDto {
	items := make([]CartItemDto, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemDto{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(),
			LineTotal: it.LineTotal().StringFixed(),
		})
	}
	return CartDto{
		CartID:     string(c.ID),
		CustomerID: c.CustomerID,
		Currency:   c.Currency,
		Items:      items,
		Total:      c.Total().StringFixed(),
		UpdatedAt:  c.UpdatedAt,
	}
}
