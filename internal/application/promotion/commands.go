package promotion

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
)

type ApplyVoucherParams struct {
	VoucherCode string `json:"voucher_code" validate:"required,max=64"`
	Subtotal    string `json:"subtotal" validate:"money"`
	Currency    string `json:"currency" validate:"iso4217"`
}

type ApplyVoucherCommand struct {
	voucherCode string
	subtotal    string
	currency    string
}

func NewApplyVoucherCommand(p ApplyVoucherParams) (ApplyVoucherCommand, error) {
	if err := validate.Struct(failure.ModulePromotion, p); err != nil {
		return ApplyVoucherCommand{}, err
	}
	return ApplyVoucherCommand{
		voucherCode: dompromo.NormaliseCode(p.VoucherCode),
		subtotal:    p.Subtotal,
		currency:    p.Currency,
	}, nil
}

func (c ApplyVoucherCommand) VoucherCode() string { return c.voucherCode }
func (c ApplyVoucherCommand) Subtotal() string    { return c.subtotal }
func (c ApplyVoucherCommand) Currency() string    { return c.currency }
