package product_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appproduct "github.com/Zhima-Mochi/minishop-modules/internal/application/product"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
)

type seqIDs struct{ n int }

func (s *seqIDs) NewID() string { s.n++; return fmt.Sprintf("p%d", s.n) }

var created = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func createCmd(t *testing.T, sku string) appproduct.CreateProductCommand {
	t.Helper()
	cmd, err := appproduct.NewCreateProductCommand(appproduct.CreateProductParams{SKU: sku, Name: "Mug", Price: "9.9", Currency: "USD"})
	require.NoError(t, err)
	return cmd
}

func TestNewCreateProductCommand(t *testing.T) {
	cmd := createCmd(t, "mug-01")
	assert.Equal(t, "MUG-01", cmd.SKU())

	_, err := appproduct.NewCreateProductCommand(appproduct.CreateProductParams{SKU: "x", Name: "Mug", Price: "-1", Currency: "USD"})
	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
	assert.Contains(t, err.Error(), "price")

	_, err = appproduct.NewGetProductQuery(appproduct.GetProductParams{})
	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
}

func TestCreateAndGetProduct(t *testing.T) {
	repo := memory.NewProductRepository()
	create := appproduct.NewCreateProduct(repo, &seqIDs{}, clockwork.NewFakeClockAt(created))
	get := appproduct.NewGetProduct(repo)

	dto, err := create.Execute(context.Background(), createCmd(t, "mug-01"))
	require.NoError(t, err)
	assert.Equal(t, appproduct.ProductDto{ProductID: "p1", SKU: "MUG-01", Name: "Mug", Price: "9.90", Currency: "USD", CreatedAt: created}, dto)

	q, err := appproduct.NewGetProductQuery(appproduct.GetProductParams{ProductID: "p1"})
	require.NoError(t, err)
	got, err := get.Execute(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, dto, got)

	_, err = create.Execute(context.Background(), createCmd(t, "MUG-01"))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Equal(t, failure.KindConflict, failure.KindOf(err))

	q, _ = appproduct.NewGetProductQuery(appproduct.GetProductParams{ProductID: "nope"})
	_, err = get.Execute(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProduct_ZeroPrice(t *testing.T) {
	create := appproduct.NewCreateProduct(memory.NewProductRepository(), &seqIDs{}, clockwork.NewFakeClockAt(created))
	cmd, err := appproduct.NewCreateProductCommand(appproduct.CreateProductParams{SKU: "free", Name: "Sticker", Price: "0", Currency: "USD"})
	require.NoError(t, err)

	_, err = create.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}
