package broker

import (
	"context"
	"log/slog"

	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"
)

// LogPublisher writes events to the log. It is the default when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event outbox.OrderEventPayload) error {
	p.logger.InfoContext(ctx, "order event",
		"type", event.Type,
		"order_id", event.OrderID,
		"status", event.Status,
		"previous_status", event.PreviousStatus,
		"routing_key", RoutingKey(event),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
