package cart

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	"github.com/Zhima-Mochi/minishop-modules/internal/pkg/retry"
)

const (
	UseCaseAddItem    = "cart.add_item"
	UseCaseRemoveItem = "cart.remove_item"

	// conflictAttempts bounds how often a cart change is replayed on a
	// freshly loaded cart after a concurrent write.
	conflictAttempts = 3
)

type (
	AddItemUseCase    = application.UseCase[AddItemCommand, CartDto]
	RemoveItemUseCase = application.UseCase[RemoveItemCommand, CartDto]
)

// onConflict reloads and replays a cart change while the stored version
// keeps moving underneath it.
func onConflict(ctx context.Context, clock clockwork.Clock, op retry.Operation[*domain.Cart]) (CartDto, error) {
	policy := retry.Policy{MaxAttempts: conflictAttempts, Clock: clock}
	classify := func(err error) retry.Action {
		if errors.Is(err, domain.ErrVersionConflict) {
			return retry.Now
		}
		return retry.Stop
	}

	saved, err := retry.Do(ctx, policy, classify, op)
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return CartDto{}, domain.ErrVersionConflict
		}
		return CartDto{}, retry.Cause(err)
	}
	return toDto(saved), nil
}

type AddItem struct {
	repo  domain.CartRepository
	clock clockwork.Clock
}

func NewAddItem(repo domain.CartRepository, clock clockwork.Clock) *AddItem {
	return &AddItem{repo: repo, clock: clock}
}

// Execute loads the cart, creating it on first use, and adds the item.
func (uc *AddItem) Execute(ctx context.Context, cmd AddItemCommand) (CartDto, error) {
	price, err := money.Parse(cmd.UnitPrice(), cmd.Currency())
	if err != nil {
		return CartDto{}, failure.Validation(failure.ModuleCart, err.Error())
	}
	return onConflict(ctx, uc.clock, func(ctx context.Context) (*domain.Cart, error) {
		return uc.attempt(ctx, cmd, price)
	})
}

func (uc *AddItem) attempt(ctx context.Context, cmd AddItemCommand, price money.Money) (*domain.Cart, error) {
	now := uc.clock.Now()
	c, err := uc.repo.FindByID(ctx, cmd.CartID())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c = domain.New(cmd.CartID(), cmd.CustomerID(), price.Currency(), now)
	case err != nil:
		return nil, failure.FromPort(failure.ModuleCart, "find cart", err)
	}

	if !c.OwnedBy(cmd.CustomerID()) {
		return nil, domain.ErrForeignCart
	}
	if err := c.AddItem(cmd.ProductID(), cmd.Quantity(), price, now); err != nil {
		return nil, err
	}

	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, failure.FromPort(failure.ModuleCart, "save cart", err)
	}
	return saved, nil
}

type RemoveItem struct {
	repo  domain.CartRepository
	clock clockwork.Clock
}

func NewRemoveItem(repo domain.CartRepository, clock clockwork.Clock) *RemoveItem {
	return &RemoveItem{repo: repo, clock: clock}
}

func (uc *RemoveItem) Execute(ctx context.Context, cmd RemoveItemCommand) (CartDto, error) {
	return onConflict(ctx, uc.clock, func(ctx context.Context) (*domain.Cart, error) {
		c, err := uc.repo.FindByID(ctx, cmd.CartID())
		if err != nil {
			return nil, failure.FromPort(failure.ModuleCart, "find cart", err)
		}
		if err := c.RemoveItem(cmd.ProductID(), uc.clock.Now()); err != nil {
			return nil, err
		}
		saved, err := uc.repo.Save(ctx, c)
		if err != nil {
			return nil, failure.FromPort(failure.ModuleCart, "save cart", err)
		}
		return saved, nil
	})
}
