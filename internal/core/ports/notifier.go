package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"
)

// Notifier delivers a message to a restaurant or user channel. Best effort.
type Notifier interface {
	NotifyRestaurant(ctx context.Context, restaurantID, recipientID kernel.ID, message string) error
	NotifyUser(ctx context.Context, userID kernel.ID, message string) error
}

// EventPublisher publishes order events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, event outbox.OrderEventPayload) error
}
