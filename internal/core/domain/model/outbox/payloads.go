package outbox

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// Event types published for order changes.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type CreateDeliveryPayload struct {
	OrderID    kernel.ID `json:"order_id"`
	CourierID  kernel.ID `json:"courier_id"`
	TotalPrice string    `json:"total_price"`
	Address    *string   `json:"address,omitempty"`
}

type CancelDeliveryPayload struct {
	OrderID   kernel.ID `json:"order_id"`
	CourierID kernel.ID `json:"courier_id"`
}

// AdvanceDeliveryPayload carries the delivery status name the order stage maps to.
type AdvanceDeliveryPayload struct {
	OrderID kernel.ID `json:"order_id"`
	Status  string    `json:"status"`
}

// NotifyRestaurantPayload is resolved to the restaurant owner when delivered.
type NotifyRestaurantPayload struct {
	OrderID      kernel.ID `json:"order_id"`
	RestaurantID kernel.ID `json:"restaurant_id"`
	Message      string    `json:"message"`
}

type NotifyCustomerPayload struct {
	OrderID    kernel.ID `json:"order_id"`
	CustomerID kernel.ID `json:"customer_id"`
	Message    string    `json:"message"`
}

// OrderEventPayload is the body of events published to the broker.
type OrderEventPayload struct {
	Type           string    `json:"type"`
	OrderID        kernel.ID `json:"order_id"`
	CustomerID     kernel.ID `json:"customer_id"`
	RestaurantID   kernel.ID `json:"restaurant_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalPrice     string    `json:"total_price"`
	OccurredAt     time.Time `json:"occurred_at"`
}
