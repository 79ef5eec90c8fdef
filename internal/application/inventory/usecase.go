package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	dominv "github.com/Zhima-Mochi/minishop-modules/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-modules/internal/pkg/retry"
)

const (
	UseCaseAdjust = "inventory.adjust"

	// conflictAttempts bounds how often an adjustment is recomputed from a
	// fresh read after losing an optimistic version race.
	conflictAttempts = 3
)

type AdjustInventoryUseCase = application.UseCase[AdjustInventoryCommand, StockDto]

type AdjustInventory struct {
	stock      dominv.StockRepository
	warehouses dominv.WarehouseRepository
	publisher  event.Publisher
	clock      clockwork.Clock
	tel        observability.Observability
}

func NewAdjustInventory(
	stock dominv.StockRepository,
	warehouses dominv.WarehouseRepository,
	publisher event.Publisher,
	clock clockwork.Clock,
	tel observability.Observability,
) *AdjustInventory {
	return &AdjustInventory{
		stock:      stock,
		warehouses: warehouses,
		publisher:  publisher,
		clock:      clock,
		tel:        observability.OrNop(tel),
	}
}

// Execute applies the delta to the stock level, creating the level on the
// first positive adjustment.
func (uc *AdjustInventory) Execute(ctx context.Context, cmd AdjustInventoryCommand) (StockDto, error) {
	if uc.warehouses != nil {
		if _, err := uc.warehouses.FindByID(ctx, cmd.InventoryID()); err != nil {
			return StockDto{}, failure.FromPort(failure.ModuleInventory, "find warehouse", err)
		}
	}

	policy := retry.Policy{
		MaxAttempts: conflictAttempts,
		Clock:       uc.clock,
		OnRetry: func(attempt int, err error, _ time.Duration) {
			logctx.FromOr(ctx, uc.tel.Logger()).Warn("stock_version_conflict",
				observability.F("attempt", attempt),
				observability.F("inventory_id", cmd.InventoryID()),
				observability.F("product_id", cmd.ProductID()),
			)
		},
	}
	classify := func(err error) retry.Action {
		if errors.Is(err, dominv.ErrVersionConflict) {
			return retry.Now
		}
		return retry.Stop
	}

	saved, err := retry.Do(ctx, policy, classify, func(ctx context.Context) (*dominv.StockLevel, error) {
		return uc.attempt(ctx, cmd)
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return StockDto{}, dominv.ErrVersionConflict
		}
		return StockDto{}, retry.Cause(err)
	}

	_ = application.Publish(ctx, uc.publisher, dominv.NewStockAdjustedEvent(saved, cmd.Delta()), uc.tel)
	return toDto(saved), nil
}

func (uc *AdjustInventory) attempt(ctx context.Context, cmd AdjustInventoryCommand) (*dominv.StockLevel, error) {
	now := uc.clock.Now()
	level, err := uc.stock.Find(ctx, cmd.InventoryID(), cmd.ProductID())
	switch {
	case errors.Is(err, dominv.ErrNotFound):
		level, err = dominv.NewStockLevel(cmd.InventoryID(), cmd.ProductID(), 0, now)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, failure.FromPort(failure.ModuleInventory, "find stock level", err)
	}

	if err := level.Apply(cmd.Delta(), now); err != nil {
		return nil, err
	}
	saved, err := uc.stock.Save(ctx, level)
	if err != nil {
		return nil, failure.FromPort(failure.ModuleInventory, "save stock level", err)
	}
	return saved, nil
}
