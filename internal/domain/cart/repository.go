package cart

import "context"

// CartRepository persists carts. FindByID returns ErrNotFound when the
// cart does not exist. Save stores the cart only when its Version matches
// the stored one, returns ErrVersionConflict otherwise, and hands back the
// cart with its new Version.
type CartRepository interface {
	Save(ctx context.Context, cart *Cart) (*Cart, error)
	FindByID(ctx context.Context, id CartID) (*Cart, error)
}
