package inventory

import (
	"context"
)

// StockRepository persists stock levels with optimistic concurrency. Save
// succeeds only when level.Version matches the stored version (zero for a
// new level) and returns the stored copy with the incremented version.
type StockRepository interface {
	Find(ctx context.Context, inventoryID, productID string) (*StockLevel, error)
	Save(ctx context.Context, level *StockLevel) (*StockLevel, error)
}

type WarehouseRepository interface {
	FindByID(ctx context.Context, id string) (*Warehouse, error)
}
