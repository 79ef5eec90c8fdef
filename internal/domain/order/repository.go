package order

import "context"

// Repository stores orders. FindByID returns ErrNotFound for unknown ids;
// Save returns ErrConflict when the id or the customer's idempotency key is
// taken. Save and Update bump Version on the order they are given; Update
// returns ErrVersionConflict when the stored order moved past it.
type Repository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByIdempotency(ctx context.Context, customerID, key string) (*Order, error)
	Update(ctx context.Context, order *Order) error
}
