package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand assigns a courier to an order in the ledger.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	courierID  kernel.ID
	orderID    kernel.ID
	totalPrice kernel.Money
	address    kernel.Address

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(
	courierID, orderID kernel.ID,
	totalPrice kernel.Money,
	address kernel.Address,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		totalPrice: totalPrice,
		address:    address,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setOrderID(orderID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) CourierID() kernel.ID     { return c.courierID }
func (c CreateDeliveryCommand) OrderID() kernel.ID       { return c.orderID }
func (c CreateDeliveryCommand) TotalPrice() kernel.Money { return c.totalPrice }
func (c CreateDeliveryCommand) Address() kernel.Address  { return c.address }

func (c *CreateDeliveryCommand) setCourierID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	c.courierID = id
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order_id", err)
	}
	c.orderID = id
	return nil
}
