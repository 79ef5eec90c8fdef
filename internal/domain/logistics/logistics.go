package logistics

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/money"
)

var (
	ErrNotFound      = failure.NotFound(failure.ModuleLogistics, "shipment not found")
	ErrAlreadyExists = failure.Conflict(failure.ModuleLogistics, "order already has a shipment")
	ErrNegativeCost  = failure.Domain(failure.ModuleLogistics, "shipment cost cannot be negative")
)

// NewDomainError builds a logistics rule violation carrying msg.
func NewDomainError(msg string) *failure.Error {
	return failure.Domain(failure.ModuleLogistics, msg)
}

type Status string

const StatusCreated Status = "created"

type Shipment struct {
	ID         string
	OrderID    string
	CustomerID string
	Address    string
	Carrier    string
	Status     Status
	Cost       money.Money
	TrackingNo string
	CreatedAt  time.Time
}

func NewShipment(id, orderID, customerID, address, carrier, trackingNo string, cost money.Money, now time.Time) (*Shipment, error) {
	if cost.IsNegative() {
		return nil, ErrNegativeCost
	}
	return &Shipment{
		ID:         id,
		OrderID:    orderID,
		CustomerID: customerID,
		Address:    address,
		Carrier:    carrier,
		Status:     StatusCreated,
		Cost:       cost,
		TrackingNo: trackingNo,
		CreatedAt:  now.UTC(),
	}, nil
}

// ShipmentCreatedEvent tells other contexts a parcel is on its way.
type ShipmentCreatedEvent struct {
	ShipmentID string
	OrderID    string
	CustomerID string
	Carrier    string
	TrackingNo string
	OccurredAt time.Time
}

const ShipmentCreatedEventName = "logistics.shipment_created"

func (ShipmentCreatedEvent) EventName() string { return ShipmentCreatedEventName }

func NewShipmentCreatedEvent(s *Shipment) ShipmentCreatedEvent {
	return ShipmentCreatedEvent{
		ShipmentID: s.ID,
		OrderID:    s.OrderID,
		CustomerID: s.CustomerID,
		Carrier:    s.Carrier,
		TrackingNo: s.TrackingNo,
		OccurredAt: s.CreatedAt,
	}
}

// ShipmentRepository stores shipments; one shipment per order. Save returns
// ErrAlreadyExists for a second shipment of the same order.
type ShipmentRepository interface {
	Save(ctx context.Context, s *Shipment) error
	FindByOrderID(ctx context.Context, orderID string) (*Shipment, error)
}
