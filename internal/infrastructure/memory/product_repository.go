package memory

import (
	"context"
	"sync"

	domproduct "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

var _ domproduct.Repository = (*ProductRepository)(nil)

type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]domproduct.Product
	bySKU map[string]string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID:  make(map[string]domproduct.Product),
		bySKU: make(map[string]string),
	}
}

func (r *ProductRepository) Save(ctx context.Context, p *domproduct.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sku := domproduct.NormaliseSKU(p.SKU)

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.bySKU[sku]; ok && id != p.ID {
		return domproduct.ErrDuplicateSKU
	}
	r.byID[p.ID] = *p
	r.bySKU[sku] = p.ID
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domproduct.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domproduct.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domproduct.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySKU[domproduct.NormaliseSKU(sku)]
	if !ok {
		return nil, domproduct.ErrNotFound
	}
	p := r.byID[id]
	return &p, nil
}
