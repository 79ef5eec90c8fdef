package inventory

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type AdjustInventoryParams struct {
	InventoryID string `json:"inventory_id" validate:"required"`
	ProductID   string `json:"product_id" validate:"required"`
	Delta       int    `json:"delta"`
}

// AdjustInventoryCommand changes the stock of one product in one inventory
// by delta. Any integer is accepted here; the stock level decides whether
// the change is allowed.
type AdjustInventoryCommand struct {
	inventoryID string
	productID   string
	delta       int
}

func NewAdjustInventoryCommand(p AdjustInventoryParams) (AdjustInventoryCommand, error) {
	if err := validate.Struct(failure.ModuleInventory, p); err != nil {
		return AdjustInventoryCommand{}, err
	}
	return AdjustInventoryCommand{
		inventoryID: p.InventoryID,
		productID:   p.ProductID,
		delta:       p.Delta,
	}, nil
}

func (c AdjustInventoryCommand) InventoryID() string { return c.inventoryID }
func (c AdjustInventoryCommand) ProductID() string   { return c.productID }
func (c AdjustInventoryCommand) Delta() int          { return c.delta }
