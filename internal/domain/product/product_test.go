package product_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

func TestNew(t *testing.T) {
	p, err := product.New("p1", " ab-12 ", " Mug ", money.MustParse("9.90", "USD"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "AB-12", p.SKU)
	assert.Equal(t, "Mug", p.Name)

	_, err = product.New("p1", "AB", "Mug", money.MustParse("0", "USD"), time.Now())
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	_, err = product.New("p1", "AB", "  ", money.MustParse("1", "USD"), time.Now())
	assert.Equal(t, failure.KindDomain, failure.KindOf(err))
	assert.Equal(t, "product name is blank", err.(*failure.Error).Message())
}

func TestNewDomainError(t *testing.T) {
	a := product.NewDomainError("discontinued")
	b := product.NewDomainError("discontinued")
	assert.ErrorIs(t, a, b)
	assert.Equal(t, "product: discontinued", a.Error())
}
