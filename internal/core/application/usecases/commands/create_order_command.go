package commands

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderCommand represents a customer placing an order at a restaurant.
//
// Example:
//
//	price, _ := kernel.MoneyFromFloat(1200)
//	cmd, err := NewCreateOrderCommand(1, 5, order.Unknown, price, []kernel.ID{10, 11}, kernel.Address{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.ID
	restaurantID kernel.ID
	status       order.Status
	totalPrice   kernel.Money
	itemIDs      []kernel.ID
	address      kernel.Address

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the placement request. An Unknown status means
// "not supplied" and defaults to Pending.
func NewCreateOrderCommand(
	customerID, restaurantID kernel.ID,
	status order.Status,
	totalPrice kernel.Money,
	itemIDs []kernel.ID,
	address kernel.Address,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalPrice: totalPrice,
		address:    address,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setStatus(status),
		cmd.setItemIDs(itemIDs),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.ID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.ID {
	return c.restaurantID
}

func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

func (c CreateOrderCommand) TotalPrice() kernel.Money {
	return c.totalPrice
}

func (c CreateOrderCommand) ItemIDs() []kernel.ID {
	return append([]kernel.ID(nil), c.itemIDs...)
}

func (c CreateOrderCommand) Address() kernel.Address {
	return c.address
}

func (c *CreateOrderCommand) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("restaurant_id", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setStatus(status order.Status) error {
	if status == order.Unknown {
		status = order.Pending
	}
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *CreateOrderCommand) setItemIDs(ids []kernel.ID) error {
	if len(ids) == 0 {
		return ErrItemsAreRequired
	}
	for i, id := range ids {
		if id <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("item at position %d: %d is not a positive integer", i, id),
			)
		}
	}
	c.itemIDs = append([]kernel.ID(nil), ids...)
	return nil
}
