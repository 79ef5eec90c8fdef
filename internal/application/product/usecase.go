package product

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

const (
	UseCaseCreate = "product.create"
	UseCaseGet    = "product.get"
)

type (
	CreateProductUseCase = application.UseCase[CreateProductCommand, ProductDto]
	GetProductUseCase    = application.UseCase[GetProductQuery, ProductDto]
)

type IDGenerator interface {
	NewID() string
}

type CreateProduct struct {
	repo  domain.Repository
	ids   IDGenerator
	clock clockwork.Clock
}

func NewCreateProduct(repo domain.Repository, ids IDGenerator, clock clockwork.Clock) *CreateProduct {
	return &CreateProduct{repo: repo, ids: ids, clock: clock}
}

func (uc *CreateProduct) Execute(ctx context.Context, cmd CreateProductCommand) (ProductDto, error) {
	price, err := money.Parse(cmd.Price(), cmd.Currency())
	if err != nil {
		return ProductDto{}, failure.Validation(failure.ModuleProduct, err.Error())
	}
	p, err := domain.New(uc.ids.NewID(), cmd.SKU(), cmd.Name(), price, uc.clock.Now())
	if err != nil {
		return ProductDto{}, err
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		return ProductDto{}, failure.FromPort(failure.ModuleProduct, "save product", err)
	}
	return toDto(p), nil
}

type GetProduct struct {
	repo domain.Repository
}

func NewGetProduct(repo domain.Repository) *GetProduct { return &GetProduct{repo: repo} }

func (uc *GetProduct) Execute(ctx context.Context, q GetProductQuery) (ProductDto, error) {
	p, err := uc.repo.FindByID(ctx, q.ProductID())
	if err != nil {
		return ProductDto{}, failure.FromPort(failure.ModuleProduct, "find product", err)
	}
	return toDto(p), nil
}
