package promotion

import (
	"context"
	"strings"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var (
	ErrVoucherNotFound    = failure.NotFound(failure.ModulePromotion, "voucher not found")
	ErrCurrencyMismatch   = failure.Domain(failure.ModulePromotion, "voucher currency differs from subtotal currency")
	ErrDiscountOutOfRange = failure.Domain(failure.ModulePromotion, "discount must be between zero and the subtotal")
)

// NewDomainError builds a promotion rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModulePromotion, msg)
}

type Voucher struct {
	Code     string
	Discount money.Money
	Active   bool
}

// NormaliseCode upper-cases and trims a voucher code so lookups ignore case.
func NormaliseCode(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

type VoucherRepository interface {
	FindByCode(ctx context.Context, code string) (*Voucher, error)
}
