package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
)

var _ domain.CartRepository = (*CartRepository)(nil)

// CartRepository keeps carts in memory with optimistic versioning.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[domain.CartID]*domain.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[domain.CartID]*domain.Cart)}
}

func (r *CartRepository) Save(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil || c.ID == "" {
		return nil, fmt.Errorf("cart repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var current int64
	if stored, ok := r.carts[c.ID]; ok {
		current = stored.Version
	}
	if c.Version != current {
		return nil, domain.ErrVersionConflict
	}

	saved := c.Clone()
	saved.Version = current + 1
	r.carts[c.ID] = saved
	return saved.Clone(), nil
}

func (r *CartRepository) FindByID(ctx context.Context, id domain.CartID) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c.Clone(), nil
}
