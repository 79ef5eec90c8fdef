package promotion

import (
	"context"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
)

// DiscountCalculator owns the discount policy for an active voucher.
type DiscountCalculator interface {
	Discount(ctx context.Context, v dompromo.Voucher, subtotal money.Money) (money.Money, error)
}
