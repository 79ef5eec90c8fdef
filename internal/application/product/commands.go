package product

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

type CreateProductParams struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Name     string `json:"name" validate:"required,max=200"`
	Price    string `json:"price" validate:"money"`
	Currency string `json:"currency" validate:"iso4217"`
}

type CreateProductCommand struct {
	sku      string
	name     string
	price    string
	currency string
}

func NewCreateProductCommand(p CreateProductParams) (CreateProductCommand, error) {
	if err := validate.Struct(failure.ModuleProduct, p); err != nil {
		return CreateProductCommand{}, err
	}
	return CreateProductCommand{sku: domain.NormaliseSKU(p.SKU), name: p.Name, price: p.Price, currency: p.Currency}, nil
}

func (c CreateProductCommand) SKU() string      { return c.sku }
func (c CreateProductCommand) Name() string     { return c.name }
func (c CreateProductCommand) Price() string    { return c.price }
func (c CreateProductCommand) Currency() string { return c.currency }

type GetProductParams struct {
	ProductID string `json:"product_id" validate:"required"`
}

type GetProductQuery struct {
	productID string
}

func NewGetProductQuery(p GetProductParams) (GetProductQuery, error) {
	if err := validate.Struct(failure.ModuleProduct, p); err != nil {
		return GetProductQuery{}, err
	}
	return GetProductQuery{productID: p.ProductID}, nil
}

func (q GetProductQuery) ProductID() string { return q.productID }
