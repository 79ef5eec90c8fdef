package logistics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogistics "github.com/Zhima-Mochi/minishop-modules/internal/application/logistics"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	domain "github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/memory"
	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/policy"
)

type fixedIDs struct{}

func (fixedIDs) NewID() string             { return "s1" }
func (fixedIDs) NewTrackingNumber() string { return "TRK0000000001" }

type capture struct{ events []event.Event }

func (c *capture) Publish(_ context.Context, e event.Event) error {
	c.events = append(c.events, e)
	return nil
}

func shipParams() applogistics.CreateShipmentParams {
	return applogistics.CreateShipmentParams{OrderID: "o1", CustomerID: "u1", Address: "1 Main St", Carrier: "DHL"}
}

func newUseCase(repo domain.ShipmentRepository, quoter applogistics.RateQuoter, pub *capture) *applogistics.CreateShipment {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	return applogistics.NewCreateShipment(repo, quoter, pub, fixedIDs{}, clock, nil)
}

func flatRate() *policy.FlatRate {
	return policy.NewFlatRate("USD", decimal.RequireFromString("9.99"),
		map[string]decimal.Decimal{"dhl": decimal.RequireFromString("4.50")})
}

func TestNewCreateShipmentCommand(t *testing.T) {
	cmd, err := applogistics.NewCreateShipmentCommand(shipParams())
	require.NoError(t, err)
	assert.Equal(t, "DHL", cmd.Carrier())

	p := shipParams()
	p.Address = ""
	_, err = applogistics.NewCreateShipmentCommand(p)
	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
}

func TestCreateShipment(t *testing.T) {
	repo := memory.NewShipmentRepository()
	pub := &capture{}
	uc := newUseCase(repo, flatRate(), pub)
	cmd, err := applogistics.NewCreateShipmentCommand(shipParams())
	require.NoError(t, err)

	dto, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "s1", dto.ShipmentID)
	assert.Equal(t, "4.50", dto.Cost)
	assert.Equal(t, "USD", dto.Currency)
	assert.Equal(t, "TRK0000000001", dto.TrackingNo)
	assert.Equal(t, domain.StatusCreated, dto.Status)

	require.Len(t, pub.events, 1)
	created, ok := pub.events[0].(domain.ShipmentCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "o1", created.OrderID)

	stored, err := repo.FindByOrderID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "s1", stored.ID)

	_, err = uc.Execute(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Equal(t, failure.KindConflict, failure.KindOf(err))
	assert.Len(t, pub.events, 1)
}

func TestCreateShipment_UnknownCarrierUsesFallback(t *testing.T) {
	uc := newUseCase(memory.NewShipmentRepository(), flatRate(), &capture{})
	p := shipParams()
	p.Carrier = "pigeon"
	cmd, err := applogistics.NewCreateShipmentCommand(p)
	require.NoError(t, err)

	dto, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "9.99", dto.Cost)
}

type brokenQuoter struct{}

func (brokenQuoter) Quote(context.Context, string, string) (money.Money, error) {
	return money.Money{}, errors.New("carrier api down")
}

func TestCreateShipment_QuoteFailureIsInfrastructure(t *testing.T) {
	pub := &capture{}
	uc := newUseCase(memory.NewShipmentRepository(), brokenQuoter{}, pub)
	cmd, _ := applogistics.NewCreateShipmentCommand(shipParams())

	_, err := uc.Execute(context.Background(), cmd)
	assert.Equal(t, failure.KindInfrastructure, failure.KindOf(err))
	assert.Empty(t, pub.events)
}
