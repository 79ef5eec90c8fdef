// Package policy holds reference pricing policies behind application ports.
package policy

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	applogistics "github.com/Zhima-Mochi/minishop-modules/internal/application/logistics"
	apppromo "github.com/Zhima-Mochi/minishop-modules/internal/application/promotion"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
)

var (
	_ apppromo.DiscountCalculator = FixedDiscount{}
	_ applogistics.RateQuoter     = (*FlatRate)(nil)
)

// FixedDiscount takes the voucher's amount off, capped at the subtotal.
type FixedDiscount struct{}

func (FixedDiscount) Discount(_ context.Context, v dompromo.Voucher, subtotal money.Money) (money.Money, error) {
	return v.Discount.Min(subtotal)
}

// FlatRate quotes one price per carrier regardless of destination.
type FlatRate struct {
	currency string
	rates    map[string]decimal.Decimal
	fallback decimal.Decimal
}

func NewFlatRate(currency string, fallback decimal.Decimal, rates map[string]decimal.Decimal) *FlatRate {
	norm := make(map[string]decimal.Decimal, len(rates))
	for k, v := range rates {
		norm[strings.ToLower(k)] = v
	}
	return &FlatRate{currency: currency, rates: norm, fallback: fallback}
}

func (f *FlatRate) Quote(ctx context.Context, carrier, _ string) (money.Money, error) {
	if err := ctx.Err(); err != nil {
		return money.Money{}, err
	}
	rate, ok := f.rates[strings.ToLower(carrier)]
	if !ok {
		rate = f.fallback
	}
	return money.New(rate, f.currency)
}
