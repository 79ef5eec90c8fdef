package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

func TestParse(t *testing.T) {
	m, err := money.Parse("12.5", "usd")
	require.NoError(t, err)

	assert.Equal(t, "USD", m.Currency())
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "12.50 USD", m.String())
}

func TestParse_Rejects(t *testing.T) {
	_, err := money.Parse("twelve", "USD")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("1", "US")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)

	_, err = money.Parse("1", "U5D")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestArithmetic(t *testing.T) {
	a := money.MustParse("10.00", "EUR")
	b := money.MustParse("2.25", "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(money.MustParse("12.25", "EUR")))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "7.75", diff.StringFixed())

	assert.Equal(t, "6.75", b.Mul(3).StringFixed())

	low, err := a.Min(b)
	require.NoError(t, err)
	assert.True(t, low.Equal(b))
}

func TestArithmetic_CurrencyMismatch(t *testing.T) {
	a := money.MustParse("1", "EUR")
	b := money.MustParse("1", "USD")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	assert.False(t, a.Equal(b))
}
