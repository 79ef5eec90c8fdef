package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Price    string `json:"price" validate:"money"`
	Currency string `json:"currency" validate:"iso4217"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

func TestStruct_Valid(t *testing.T) {
	err := validate.Struct(failure.ModuleCart, sample{
		Email: "a@b.com", Price: "9.99", Currency: "USD", Quantity: 1,
	})
	assert.NoError(t, err)
}

func TestStruct_ReportsEveryField(t *testing.T) {
	err := validate.Struct(failure.ModuleCart, sample{
		Email: "nope", Price: "-1", Currency: "XXQ", Quantity: 0,
	})
	require.Error(t, err)

	fe, ok := failure.As(err)
	require.True(t, ok)
	assert.Equal(t, failure.KindValidation, fe.Kind)
	assert.Equal(t, failure.ModuleCart, fe.Module)
	assert.Contains(t, fe.Message(), "email: email")
	assert.Contains(t, fe.Message(), "price: money")
	assert.Contains(t, fe.Message(), "currency: iso4217")
	assert.Contains(t, fe.Message(), "quantity: gt=0")
}

func TestStruct_MoneyRule(t *testing.T) {
	tests := []struct {
		price string
		ok    bool
	}{
		{"0", true},
		{"12.50", true},
		{" 3 ", true},
		{"", false},
		{"abc", false},
		{"-0.01", false},
		{"1.005", false},
		{"0.001", false},
		{"2.500", true},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			err := validate.Struct(failure.ModulePromotion, sample{
				Email: "a@b.com", Price: tt.price, Currency: "EUR", Quantity: 1,
			})
			assert.Equal(t, tt.ok, err == nil, "err=%v", err)
		})
	}
}
