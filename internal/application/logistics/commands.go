package logistics

import (
	"github.com/Zhima-Mochi/minishop-modules/internal/application/validate"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

type CreateShipmentParams struct {
	OrderID    string `json:"order_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	Address    string `json:"address" validate:"required,max=500"`
	Carrier    string `json:"carrier" validate:"required,max=32"`
}

type CreateShipmentCommand struct {
	orderID    string
	customerID string
	address    string
	carrier    string
}

func NewCreateShipmentCommand(p CreateShipmentParams) (CreateShipmentCommand, error) {
	if err := validate.Struct(failure.ModuleLogistics, p); err != nil {
		return CreateShipmentCommand{}, err
	}
	return CreateShipmentCommand{
		orderID:    p.OrderID,
		customerID: p.CustomerID,
		address:    p.Address,
		carrier:    p.Carrier,
	}, nil
}

func (c CreateShipmentCommand) OrderID() string    { return c.orderID }
func (c CreateShipmentCommand) CustomerID() string { return c.customerID }
func (c CreateShipmentCommand) Address() string    { return c.address }
func (c CreateShipmentCommand) Carrier() string    { return c.carrier }
