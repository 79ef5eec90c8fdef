package product

import (
	"context"
	"strings"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var (
	ErrNotFound     = failure.NotFound(failure.ModuleProduct, "product not found")
	ErrDuplicateSKU = failure.Conflict(failure.ModuleProduct, "sku already exists")
	ErrInvalidPrice = failure.Domain(failure.ModuleProduct, "price must be positive")
)

// NewDomainError builds a product rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleProduct, msg)
}

type Product struct {
	ID        string
	SKU       string
	Name      string
	Price     money.Money
	CreatedAt time.Time
}

// NormaliseSKU upper-cases and trims a stock keeping unit.
func NormaliseSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func New(id, sku, name string, price money.Money, now time.Time) (*Product, error) {
	if price.IsNegative() || price.IsZero() {
		return nil, ErrInvalidPrice
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewDomainError("product name is blank")
	}
	return &Product{ID: id, SKU: NormaliseSKU(sku), Name: name, Price: price, CreatedAt: now.UTC()}, nil
}

// Repository stores products. Save returns ErrDuplicateSKU when another
// product already uses the SKU.
type Repository interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
}
