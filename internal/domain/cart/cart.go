package cart

import (
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var (
	ErrNotFound         = failure.NotFound(failure.ModuleCart, "cart not found")
	ErrItemNotInCart    = failure.NotFound(failure.ModuleCart, "item not in cart")
	ErrCurrencyMismatch = failure.Domain(failure.ModuleCart, "item currency differs from cart currency")
	ErrForeignCart      = failure.Domain(failure.ModuleCart, "cart belongs to another customer")
	ErrInvalidQuantity  = failure.Domain(failure.ModuleCart, "quantity must be greater than zero")
	ErrVersionConflict  = failure.Conflict(failure.ModuleCart, "cart was modified concurrently")
)

// NewDomainError builds a cart rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleCart, msg)
}

type CartID string

type Item struct {
	ProductID string
	Quantity  int
	UnitPrice money.Money
}

func (i Item) LineTotal() money.Money { return i.UnitPrice.Mul(int64(i.Quantity)) }

// Cart is priced in a single currency fixed by its first item. Version is
// the stored revision the cart was loaded at; zero means never saved.
type Cart struct {
	ID         CartID
	CustomerID string
	Currency   string
	Items      []Item
	Version    int64
	UpdatedAt  time.Time
}

func New(id CartID, customerID, currency string, now time.Time) *Cart {
	return &Cart{
		ID:         id,
		CustomerID: customerID,
		Currency:   currency,
		UpdatedAt:  now.UTC(),
	}
}

// AddItem adds quantity of a product. Adding a product already in the cart
// increases its quantity and replaces the unit price.
func (c *Cart) AddItem(productID string, quantity int, price money.Money, now time.Time) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if c.Currency == "" {
		c.Currency = price.Currency()
	}
	if price.Currency() != c.Currency {
		return ErrCurrencyMismatch
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.Items[i].UnitPrice = price
			c.touch(now)
			return nil
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity, UnitPrice: price})
	c.touch(now)
	return nil
}

func (c *Cart) RemoveItem(productID string, now time.Time) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch(now)
			return nil
		}
	}
	return ErrItemNotInCart
}

// OwnedBy reports whether customerID may modify the cart.
func (c *Cart) OwnedBy(customerID string) bool {
	return c.CustomerID == "" || c.CustomerID == customerID
}

func (c *Cart) Total() money.Money {
	total, err := money.Zero(c.Currency)
	if err != nil {
		return money.Money{}
	}
	for _, it := range c.Items {
		total, _ = total.Add(it.LineTotal())
	}
	return total
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = append([]Item(nil), c.Items...)
	return &clone
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}
