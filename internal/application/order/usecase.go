package order

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

const (
	UseCasePlace  = "order.place"
	UseCaseCancel = "order.cancel"
	UseCaseGet    = "order.get"
)

type (
	PlaceOrderUseCase  = application.UseCase[PlaceOrderCommand, OrderDto]
	CancelOrderUseCase = application.UseCase[CancelOrderCommand, OrderDto]
	GetOrderUseCase    = application.UseCase[GetOrderQuery, OrderDto]
)

type PlaceOrder struct {
	repo        domain.Repository
	idGenerator IDGenerator
	publisher   event.Publisher
	clock       clockwork.Clock
	tel         observability.Observability
}

func NewPlaceOrder(
	repo domain.Repository,
	idGen IDGenerator,
	publisher event.Publisher,
	clock clockwork.Clock,
	tel observability.Observability,
) *PlaceOrder {
	return &PlaceOrder{
		repo:        repo,
		idGenerator: idGen,
		publisher:   publisher,
		clock:       clock,
		tel:         observability.OrNop(tel),
	}
}

// Execute stores a new order and announces it. A repeated idempotency key
// for the same customer replays the stored order instead.
func (uc *PlaceOrder) Execute(ctx context.Context, cmd PlaceOrderCommand) (OrderDto, error) {
	if key := cmd.IdempotencyKey(); key != "" {
		if existing, ok, err := uc.replay(ctx, cmd.CustomerID(), key); err != nil || ok {
			return existing, err
		}
	}

	lines := make([]domain.Line, 0, len(cmd.Lines()))
	for _, l := range cmd.Lines() {
		price, err := money.Parse(l.UnitPrice, l.Currency)
		if err != nil {
			return OrderDto{}, failure.Validation(failure.ModuleOrder, err.Error())
		}
		lines = append(lines, domain.Line{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: price})
	}

	entity, err := domain.New(uc.idGenerator.NewID(), cmd.CustomerID(), lines, uc.clock.Now())
	if err != nil {
		return OrderDto{}, err
	}
	entity.IdempotencyKey = cmd.IdempotencyKey()

	if err := uc.repo.Save(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrConflict) && entity.IdempotencyKey != "" {
			if existing, ok, rerr := uc.replay(ctx, cmd.CustomerID(), entity.IdempotencyKey); rerr == nil && ok {
				return existing, nil
			}
		}
		return OrderDto{}, failure.FromPort(failure.ModuleOrder, "save order", err)
	}

	_ = application.Publish(ctx, uc.publisher, domain.NewOrderPlacedEvent(entity), uc.tel)
	return toDto(entity), nil
}

func (uc *PlaceOrder) replay(ctx context.Context, customerID, key string) (OrderDto, bool, error) {
	existing, err := uc.repo.FindByIdempotency(ctx, customerID, key)
	switch {
	case err == nil:
		return toDto(existing), true, nil
	case errors.Is(err, domain.ErrNotFound):
		return OrderDto{}, false, nil
	default:
		return OrderDto{}, false, failure.FromPort(failure.ModuleOrder, "find order by idempotency key", err)
	}
}

type CancelOrder struct {
	repo      domain.Repository
	publisher event.Publisher
	clock     clockwork.Clock
	tel       observability.Observability
}

func NewCancelOrder(repo domain.Repository, publisher event.Publisher, clock clockwork.Clock, tel observability.Observability) *CancelOrder {
	return &CancelOrder{repo: repo, publisher: publisher, clock: clock, tel: observability.OrNop(tel)}
}

func (uc *CancelOrder) Execute(ctx context.Context, cmd CancelOrderCommand) (OrderDto, error) {
	entity, err := uc.repo.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return OrderDto{}, failure.FromPort(failure.ModuleOrder, "find order", err)
	}
	if err := entity.Cancel(cmd.Reason(), uc.clock.Now()); err != nil {
		return OrderDto{}, err
	}
	if err := uc.repo.Update(ctx, entity); err != nil {
		return OrderDto{}, failure.FromPort(failure.ModuleOrder, "update order", err)
	}

	_ = application.Publish(ctx, uc.publisher, domain.NewOrderCancelledEvent(entity), uc.tel)
	return toDto(entity), nil
}

type GetOrder struct {
	repo domain.Repository
}

func NewGetOrder(repo domain.Repository) *GetOrder { return &GetOrder{repo: repo} }

func (uc *GetOrder) Execute(ctx context.Context, q GetOrderQuery) (OrderDto, error) {
	entity, err := uc.repo.FindByID(ctx, q.OrderID())
	if err != nil {
		return OrderDto{}, failure.FromPort(failure.ModuleOrder, "find order", err)
	}
	return toDto(entity), nil
}
