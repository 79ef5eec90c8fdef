// Package money holds a decimal amount tagged with an ISO 4217 currency code.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("money: invalid amount")
	ErrInvalidCurrency  = errors.New("money: currency must be a three letter ISO 4217 code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

type Money struct {
	amount   decimal.Decimal
	currency string
}

// New builds a Money from a decimal amount. The currency is upper-cased.
func New(amount decimal.Decimal, currency string) (Money, error) {
	cur, err := normaliseCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: cur}, nil
}

// Parse reads a decimal string such as "12.50".
func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return New(d, currency)
}

func MustParse(amount, currency string) Money {
	m, err := Parse(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns an empty amount in currency.
func Zero(currency string) (Money, error) { return New(decimal.Zero, currency) }

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Add(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, o.currency)
	}
	return Money{amount: m.amount.Add(o.amount), currency: m.currency}, nil
}

func (m Money) Sub(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, o.currency)
	}
	return Money{amount: m.amount.Sub(o.amount), currency: m.currency}, nil
}

// Mul scales the amount by an integer quantity.
func (m Money) Mul(qty int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(qty)), currency: m.currency}
}

// Min returns the smaller of m and o. Both must share a currency.
func (m Money) Min(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, o.currency)
	}
	if o.amount.LessThan(m.amount) {
		return o, nil
	}
	return m, nil
}

func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}

// StringFixed renders the amount with two decimal places.
func (m Money) StringFixed() string { return m.amount.StringFixed(2) }

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func normaliseCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return c, nil
}
