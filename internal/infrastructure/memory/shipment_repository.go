package memory

import (
	"context"
	"sync"

	domlog "github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
)

var _ domlog.ShipmentRepository = (*ShipmentRepository)(nil)

type ShipmentRepository struct {
	mu      sync.RWMutex
	byOrder map[string]domlog.Shipment
}

func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{byOrder: make(map[string]domlog.Shipment)}
}

func (r *ShipmentRepository) Save(ctx context.Context, s *domlog.Shipment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[s.OrderID]; exists {
		return domlog.ErrAlreadyExists
	}
	r.byOrder[s.OrderID] = *s
	return nil
}

func (r *ShipmentRepository) FindByOrderID(ctx context.Context, orderID string) (*domlog.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byOrder[orderID]
	if !ok {
		return nil, domlog.ErrNotFound
	}
	return &s, nil
}
