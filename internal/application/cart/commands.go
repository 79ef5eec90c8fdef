package cart

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type AddItemParams struct {
	CartID     string `json:"cart_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	ProductID  string `json:"product_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	UnitPrice  string `json:"unit_price" validate:"money"`
	Currency   string `json:"currency" validate:"iso4217"`
}

// AddItemCommand puts a quantity of a product into a cart.
type AddItemCommand struct {
	cartID     domain.CartID
	customerID string
	productID  string
	quantity   int
	unitPrice  string
	currency   string
}

func NewAddItemCommand(p AddItemParams) (AddItemCommand, error) {
	if err := validate.Struct(failure.ModuleCart, p); err != nil {
		return AddItemCommand{}, err
	}
	return AddItemCommand{
		cartID:     domain.CartID(p.CartID),
		customerID: p.CustomerID,
		productID:  p.ProductID,
		quantity:   p.Quantity,
		unitPrice:  p.UnitPrice,
		currency:   p.Currency,
	}, nil
}

func (c AddItemCommand) CartID() domain.CartID { return c.cartID }
func (c AddItemCommand) CustomerID() string    { return c.customerID }
func (c AddItemCommand) ProductID() string     { return c.productID }
func (c AddItemCommand) Quantity() int         { return c.quantity }
func (c AddItemCommand) UnitPrice() string     { return c.unitPrice }
func (c AddItemCommand) Currency() string      { return c.currency }

type RemoveItemParams struct {
	CartID    string `json:"cart_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

type RemoveItemCommand struct {
	cartID    domain.CartID
	productID string
}

func NewRemoveItemCommand(p RemoveItemParams) (RemoveItemCommand, error) {
	if err := validate.Struct(failure.ModuleCart, p); err != nil {
		return RemoveItemCommand{}, err
	}
	return RemoveItemCommand{cartID: domain.CartID(p.CartID), productID: p.ProductID}, nil
}

func (c RemoveItemCommand) CartID() domain.CartID { return c.cartID }
func (c RemoveItemCommand) ProductID() string     { return c.productID }
