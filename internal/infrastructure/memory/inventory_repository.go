package memory

import (
	"context"
	"sync"

	dominv "github.com/Zhima-Mochi/minishop-modules/internal/domain/inventory"
)

var (
	_ dominv.StockRepository     = (*StockRepository)(nil)
	_ dominv.WarehouseRepository = (*WarehouseRepository)(nil)
)

type stockKey struct{ inventoryID, productID string }

// StockRepository keeps stock levels in memory with optimistic versioning.
type StockRepository struct {
	mu     sync.RWMutex
	levels map[stockKey]*dominv.StockLevel
}

func NewStockRepository() *StockRepository {
	return &StockRepository{levels: make(map[stockKey]*dominv.StockLevel)}
}

func (r *StockRepository) Find(ctx context.Context, inventoryID, productID string) (*dominv.StockLevel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	level, ok := r.levels[stockKey{inventoryID, productID}]
	if !ok {
		return nil, dominv.ErrNotFound
	}
	return level.Clone(), nil
}

func (r *StockRepository) Save(ctx context.Context, level *dominv.StockLevel) (*dominv.StockLevel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := stockKey{level.InventoryID, level.ProductID}
	var current int64
	if stored, ok := r.levels[key]; ok {
		current = stored.Version
	}
	if level.Version != current {
		return nil, dominv.ErrVersionConflict
	}

	saved := level.Clone()
	saved.Version = current + 1
	r.levels[key] = saved
	return saved.Clone(), nil
}

type WarehouseRepository struct {
	mu         sync.RWMutex
	warehouses map[string]dominv.Warehouse
}

func NewWarehouseRepository(seed ...dominv.Warehouse) *WarehouseRepository {
	r := &WarehouseRepository{warehouses: make(map[string]dominv.Warehouse, len(seed))}
	for _, w := range seed {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *WarehouseRepository) Add(w dominv.Warehouse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouses[w.ID] = w
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id string) (*dominv.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.warehouses[id]
	if !ok {
		return nil, dominv.ErrWarehouseNotFound
	}
	return &w, nil
}
