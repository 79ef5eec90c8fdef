package inventory

import (
	"math"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

var (
	ErrNotFound          = failure.NotFound(failure.ModuleInventory, "stock level not found")
	ErrWarehouseNotFound = failure.NotFound(failure.ModuleInventory, "warehouse not found")
	ErrInsufficientStock = failure.Domain(failure.ModuleInventory, "insufficient stock")
	ErrNegativeStock     = failure.Domain(failure.ModuleInventory, "stock level cannot be negative")
	ErrStockOverflow     = failure.Domain(failure.ModuleInventory, "stock level exceeds the maximum quantity")
	ErrVersionConflict   = failure.Conflict(failure.ModuleInventory, "stock level was modified concurrently")
)

// NewDomainError builds an inventory rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleInventory, msg)
}

type Warehouse struct {
	ID   string
	Name string
}

// StockLevel is the quantity of one product held by one inventory
// (warehouse). Version increases on every successful save.
type StockLevel struct {
	InventoryID string
	ProductID   string
	Quantity    int
	Version     int64
	UpdatedAt   time.Time
}

func NewStockLevel(inventoryID, productID string, quantity int, now time.Time) (*StockLevel, error) {
	if quantity < 0 {
		return nil, ErrNegativeStock
	}
	return &StockLevel{
		InventoryID: inventoryID,
		ProductID:   productID,
		Quantity:    quantity,
		UpdatedAt:   now.UTC(),
	}, nil
}

// Apply adds delta, which may be negative. The level never drops below zero
// and never wraps past math.MaxInt.
func (s *StockLevel) Apply(delta int, now time.Time) error {
	if delta > 0 && s.Quantity > math.MaxInt-delta {
		return ErrStockOverflow
	}
	if s.Quantity+delta < 0 {
		return ErrInsufficientStock
	}
	s.Quantity += delta
	s.UpdatedAt = now.UTC()
	return nil
}

func (s *StockLevel) Clone() *StockLevel {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
