package logistics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/logistics"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

func TestNewShipment(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s, err := logistics.NewShipment("s1", "o1", "u1", "1 Main St", "dhl", "TRK1", money.MustParse("4.99", "USD"), now)
	require.NoError(t, err)
	assert.Equal(t, logistics.StatusCreated, s.Status)

	e := logistics.NewShipmentCreatedEvent(s)
	assert.Equal(t, "logistics.shipment_created", e.EventName())
	assert.Equal(t, "u1", e.CustomerID)
	assert.Equal(t, now, e.OccurredAt)

	_, err = logistics.NewShipment("s1", "o1", "u1", "x", "dhl", "T", money.MustParse("-1", "USD"), now)
	assert.ErrorIs(t, err, logistics.ErrNegativeCost)
}

func TestNewDomainError(t *testing.T) {
	err := logistics.NewDomainError("address unreachable")
	assert.Equal(t, "address unreachable", err.Message())
	assert.Equal(t, failure.ModuleLogistics, err.Module)
}
