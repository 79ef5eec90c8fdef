// Package cache puts read-through LRU caches in front of repositories.
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	domproduct "github.com/Zhima-Mochi/minishop-modules/internal/domain/product"
)

var _ domproduct.Repository = (*ProductRepository)(nil)

// ProductRepository caches products by id. Products are immutable once
// created, so entries never go stale; Save refreshes the entry anyway.
type ProductRepository struct {
	next domproduct.Repository
	byID *lru.Cache[string, domproduct.Product]
}

func NewProductRepository(next domproduct.Repository, size int) (*ProductRepository, error) {
	c, err := lru.New[string, domproduct.Product](size)
	if err != nil {
		return nil, fmt.Errorf("product cache: %w", err)
	}
	return &ProductRepository{next: next, byID: c}, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *domproduct.Product) error {
	if err := r.next.Save(ctx, p); err != nil {
		return err
	}
	r.byID.Add(p.ID, *p)
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domproduct.Product, error) {
	if p, ok := r.byID.Get(id); ok {
		return &p, nil
	}
	p, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.byID.Add(id, *p)
	return p, nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domproduct.Product, error) {
	p, err := r.next.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	r.byID.Add(p.ID, *p)
	return p, nil
}

func (r *ProductRepository) Len() int { return r.byID.Len() }
