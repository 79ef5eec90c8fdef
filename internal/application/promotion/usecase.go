package promotion

import (
	"context"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
)

const UseCaseApplyVoucher = "promotion.apply_voucher"

type ApplyVoucherUseCase = application.UseCase[ApplyVoucherCommand, PromotionResultDto]

type ApplyVoucher struct {
	vouchers   dompromo.VoucherRepository
	calculator DiscountCalculator
}

func NewApplyVoucher(vouchers dompromo.VoucherRepository, calculator DiscountCalculator) *ApplyVoucher {
	return &ApplyVoucher{vouchers: vouchers, calculator: calculator}
}

// Execute prices a subtotal with a voucher. Inactive vouchers are reported
// as not applied rather than failing.
func (uc *ApplyVoucher) Execute(ctx context.Context, cmd ApplyVoucherCommand) (PromotionResultDto, error) {
	subtotal, err := money.Parse(cmd.Subtotal(), cmd.Currency())
	if err != nil {
		return PromotionResultDto{}, failure.Validation(failure.ModulePromotion, err.Error())
	}

	v, err := uc.vouchers.FindByCode(ctx, cmd.VoucherCode())
	if err != nil {
		return PromotionResultDto{}, failure.FromPort(failure.ModulePromotion, "find voucher", err)
	}

	result := PromotionResultDto{
		VoucherCode: v.Code,
		Subtotal:    subtotal.StringFixed(),
		Discount:    "0.00",
		Total:       subtotal.StringFixed(),
		Currency:    subtotal.Currency(),
	}
	if !v.Active {
		return result, nil
	}
	if v.Discount.Currency() != subtotal.Currency() {
		return PromotionResultDto{}, dompromo.ErrCurrencyMismatch
	}

	discount, err := uc.calculator.Discount(ctx, *v, subtotal)
	if err != nil {
		return PromotionResultDto{}, failure.FromPort(failure.ModulePromotion, "calculate discount", err)
	}
	total, err := subtotal.Sub(discount)
	if err != nil {
		return PromotionResultDto{}, dompromo.ErrCurrencyMismatch
	}
	if discount.IsNegative() || total.IsNegative() {
		return PromotionResultDto{}, dompromo.ErrDiscountOutOfRange
	}

	result.Applied = true
	result.Discount = discount.StringFixed()
	result.Total = total.StringFixed()
	return result, nil
}
