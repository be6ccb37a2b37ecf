package ports

import (
	"context"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
)

// DeliveryFilter narrows FindDeliveries. Zero fields do not filter.
type DeliveryFilter struct {
	CourierID kernel.ID
	OrderID   kernel.ID
	Active    *bool
}

// DeliveryRepository is the ledger's store of courier assignments.
type DeliveryRepository interface {
	// Add persists a new delivery. A second delivery for the same order is a ConflictError.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get returns the delivery or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*delivery.Delivery, error)

	// FindByOrder returns the delivery of an order or an ObjectNotFoundError.
	FindByOrder(ctx context.Context, orderID kernel.ID) (*delivery.Delivery, error)

	// Find lists deliveries matching filter, oldest first.
	Find(ctx context.Context, filter DeliveryFilter) ([]*delivery.Delivery, error)
}
