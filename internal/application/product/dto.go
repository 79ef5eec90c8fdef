package product

import (
	"time"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

type ProductDto struct {
	ProductID string    `json:"product_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

func toDto(p *domain.Product) ProductDto {
	return ProductDto{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price.StringFixed(),
		Currency:  p.Price.Currency(),
		CreatedAt: p.CreatedAt,
	}
}
