// Package ports defines the contracts between the application core and its adapters:
// repositories for the aggregates and clients for the collaborating services.
package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together with
// their item references.
type OrderRepository interface {
	// Add persists a new order and one item row per item reference, then records the
	// assigned identifier on the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and total price. Item references never change.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns a live order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetUnscoped also returns soft-deleted orders.
	GetUnscoped(ctx context.Context, id kernel.ID) (*order.Order, error)

	// ListByRestaurant and ListByCustomer return live orders, newest first.
	ListByRestaurant(ctx context.Context, restaurantID kernel.ID) ([]*order.Order, error)
	ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error)

	// Delete soft-deletes the order. Deleting a missing order is an ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.ID) error
}
