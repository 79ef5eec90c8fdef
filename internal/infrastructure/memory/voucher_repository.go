package memory

import (
	"context"
	"sync"

	dompromo "github.com/Zhima-Mochi/minishop-modules/internal/domain/promotion"
)

var _ dompromo.VoucherRepository = (*VoucherRepository)(nil)

type VoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[string]dompromo.Voucher
}

func NewVoucherRepository(seed ...dompromo.Voucher) *VoucherRepository {
	r := &VoucherRepository{vouchers: make(map[string]dompromo.Voucher, len(seed))}
	for _, v := range seed {
		r.Put(v)
	}
	return r
}

func (r *VoucherRepository) Put(v dompromo.Voucher) {
	v.Code = dompromo.NormaliseCode(v.Code)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vouchers[v.Code] = v
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*dompromo.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vouchers[dompromo.NormaliseCode(code)]
	if !ok {
		return nil, dompromo.ErrVoucherNotFound
	}
	return &v, nil
}
