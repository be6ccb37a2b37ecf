package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand is a partial update of an order: only supplied fields change.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.ID
	status     *order.Status
	totalPrice *kernel.Money
	courierID  kernel.ID

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand builds the command. nil status or price means "leave as is";
// a nil courierID means no courier was supplied.
func NewTransitionOrderCommand(
	orderID kernel.ID,
	status *order.Status,
	totalPrice *kernel.Money,
	courierID *kernel.ID,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		totalPrice: totalPrice,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setCourierID(courierID),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

// Status returns the requested status and whether one was supplied.
func (c TransitionOrderCommand) Status() (order.Status, bool) {
	if c.status == nil {
		return order.Unknown, false
	}
	return *c.status, true
}

func (c TransitionOrderCommand) TotalPrice() (kernel.Money, bool) {
	if c.totalPrice == nil {
		return kernel.Money{}, false
	}
	return *c.totalPrice, true
}

// CourierID is zero when no courier was supplied.
func (c TransitionOrderCommand) CourierID() kernel.ID {
	return c.courierID
}

func (c *TransitionOrderCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	st := *status
	c.status = &st
	return nil
}

func (c *TransitionOrderCommand) setCourierID(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	c.courierID = *id
	return nil
}
