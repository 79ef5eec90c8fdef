package logistics

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

const UseCaseCreateShipment = "logistics.create_shipment"

type CreateShipmentUseCase = application.UseCase[CreateShipmentCommand, ShipmentDto]

type CreateShipment struct {
	repo      domain.ShipmentRepository
	quoter    RateQuoter
	publisher LogisticsEventPublisher
	ids       IDGenerator
	clock     clockwork.Clock
	tel       observability.Observability
}

func NewCreateShipment(
	repo domain.ShipmentRepository,
	quoter RateQuoter,
	publisher LogisticsEventPublisher,
	ids IDGenerator,
	clock clockwork.Clock,
	tel observability.Observability,
) *CreateShipment {
	return &CreateShipment{
		repo:      repo,
		quoter:    quoter,
		publisher: publisher,
		ids:       ids,
		clock:     clock,
		tel:       observability.OrNop(tel),
	}
}

func (uc *CreateShipment) Execute(ctx context.Context, cmd CreateShipmentCommand) (ShipmentDto, error) {
	cost, err := uc.quoter.Quote(ctx, cmd.Carrier(), cmd.Address())
	if err != nil {
		return ShipmentDto{}, failure.FromPort(failure.ModuleLogistics, "quote shipping rate", err)
	}

	s, err := domain.NewShipment(
		uc.ids.NewID(),
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Address(),
		cmd.Carrier(),
		uc.ids.NewTrackingNumber(),
		cost,
		uc.clock.Now(),
	)
	if err != nil {
		return ShipmentDto{}, err
	}
	if err := uc.repo.Save(ctx, s); err != nil {
		return ShipmentDto{}, failure.FromPort(failure.ModuleLogistics, "save shipment", err)
	}

	_ = application.Publish(ctx, uc.publisher, domain.NewShipmentCreatedEvent(s), uc.tel)
	return toDto(s), nil
}
