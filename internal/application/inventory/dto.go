package inventory

import (
	"time"

	dominv "github.com/Zhima-Mochi/minishop-modules/internal/domain/inventory"
)

type StockDto struct {
	InventoryID string    `json:"inventory_id"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDto(s *dominv.StockLevel) StockDto {
	return StockDto{
		InventoryID: s.InventoryID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		Version:     s.Version,
		UpdatedAt:   s.UpdatedAt,
	}
}
