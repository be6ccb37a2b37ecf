package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// LedgerDelivery is the ledger's view of a delivery as seen over the wire.
type LedgerDelivery struct {
	ID           kernel.ID  `json:"id"`
	CourierID    kernel.ID  `json:"courier_id"`
	OrderID      kernel.ID  `json:"order_id"`
	Status       string     `json:"status"`
	Active       bool       `json:"active"`
	PickupTime   *time.Time `json:"pickup_time,omitempty"`
	DeliveryTime *time.Time `json:"delivery_time,omitempty"`
	TotalPrice   string     `json:"total_price"`
	Address      *string    `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewLedgerDelivery is a delivery creation request.
type NewLedgerDelivery struct {
	CourierID  kernel.ID `json:"courier_id"`
	OrderID    kernel.ID `json:"order_id"`
	TotalPrice string    `json:"total_price,omitempty"`
	Address    *string   `json:"address,omitempty"`
}

// Ledger is the delivery service. Rejections surface as errs.ConflictError or
// errs.ObjectNotFoundError; no answer at all as errs.DownstreamUnavailableError.
type Ledger interface {
	// CreateDelivery fails with a ConflictError if the order already has a delivery.
	CreateDelivery(ctx context.Context, req NewLedgerDelivery) (LedgerDelivery, error)

	// DeactivateDelivery is idempotent.
	DeactivateDelivery(ctx context.Context, id kernel.ID) error

	AdvanceDelivery(ctx context.Context, id kernel.ID, status string) error

	// FindActiveByCourier returns all of the courier's active deliveries, possibly none,
	// rather than a single one. Callers pick the delivery of the order they act on.
	FindActiveByCourier(ctx context.Context, courierID kernel.ID) ([]LedgerDelivery, error)

	// FindByOrder returns the delivery of an order or an ObjectNotFoundError.
	FindByOrder(ctx context.Context, orderID kernel.ID) (LedgerDelivery, error)
}
