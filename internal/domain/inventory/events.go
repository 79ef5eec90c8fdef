package inventory

import "time"

// StockAdjustedEvent is emitted after a stock level change is saved.
type StockAdjustedEvent struct {
	InventoryID string
	ProductID   string
	Delta       int
	Quantity    int
	Version     int64
	OccurredAt  time.Time
}

func (StockAdjustedEvent) EventName() string { return "inventory.stock_adjusted" }

func NewStockAdjustedEvent(s *StockLevel, delta int) StockAdjustedEvent {
	return StockAdjustedEvent{
		InventoryID: s.InventoryID,
		ProductID:   s.ProductID,
		Delta:       delta,
		Quantity:    s.Quantity,
		Version:     s.Version,
		OccurredAt:  s.UpdatedAt,
	}
}
