package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
)

var _ domain.Repository = (*OrderRepository)(nil)

type OrderRepository struct {
	mu          sync.RWMutex
	orders      map[string]*domain.Order
	idempotency map[string]string // customer_id + key -> order id
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:      make(map[string]*domain.Order),
		idempotency: make(map[string]string),
	}
}

func idemKey(customerID, key string) string { return customerID + "\x00" + key }

func (r *OrderRepository) Save(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return domain.ErrConflict
	}
	if o.IdempotencyKey != "" {
		if _, exists := r.idempotency[idemKey(o.CustomerID, o.IdempotencyKey)]; exists {
			return domain.ErrConflict
		}
		r.idempotency[idemKey(o.CustomerID, o.IdempotencyKey)] = o.ID
	}
	o.Version = 1
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) FindByIdempotency(ctx context.Context, customerID, key string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, domain.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idempotency[idemKey(customerID, key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.orders[o.ID]
	if !exists {
		return domain.ErrNotFound
	}
	if stored.Version != o.Version {
		return domain.ErrVersionConflict
	}
	o.Version = stored.Version + 1
	r.orders[o.ID] = o.Clone()
	return nil
}
