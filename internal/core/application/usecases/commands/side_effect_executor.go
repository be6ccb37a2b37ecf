package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// SideEffectExecutor performs the side effect an outbox message stands for against
// the collaborating services. It does not record the outcome.
type SideEffectExecutor struct {
	ledger    ports.Ledger
	directory ports.Directory
	notifier  ports.Notifier
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewSideEffectExecutor(
	ledger ports.Ledger,
	directory ports.Directory,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *SideEffectExecutor {
	return &SideEffectExecutor{
		ledger:    ledger,
		directory: directory,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.With("component", "side_effect_executor"),
	}
}

// Execute runs the side effect of m. redelivery is true when m may already have been
// attempted, in which case ledger conflicts are checked against the current ledger state
// before they are reported.
func (e *SideEffectExecutor) Execute(ctx context.Context, m *outbox.Message, redelivery bool) error {
	switch m.Kind() {
	case outbox.KindCreateDelivery:
		return e.createDelivery(ctx, m, redelivery)
	case outbox.KindCancelDelivery:
		return e.cancelDelivery(ctx, m)
	case outbox.KindAdvanceDelivery:
		return e.advanceDelivery(ctx, m)
	case outbox.KindNotifyRestaurant:
		return e.notifyRestaurant(ctx, m)
	case outbox.KindNotifyCustomer:
		return e.notifyCustomer(ctx, m)
	case outbox.KindPublishEvent:
		return e.publishEvent(ctx, m)
	default:
		return backoff.Permanent(fmt.Errorf("no executor for outbox kind %q", m.Kind()))
	}
}

func (e *SideEffectExecutor) createDelivery(ctx context.Context, m *outbox.Message, redelivery bool) error {
	var p outbox.CreateDeliveryPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}

	created, err := e.ledger.CreateDelivery(ctx, ports.NewLedgerDelivery{
		CourierID:  p.CourierID,
		OrderID:    p.OrderID,
		TotalPrice: p.TotalPrice,
		Address:    p.Address,
	})
	if err == nil {
		e.logger.InfoContext(ctx, "delivery created",
			"order_id", p.OrderID, "courier_id", p.CourierID, "delivery_id", created.ID)
		return nil
	}
	if !redelivery || !errors.Is(err, errs.ErrConflict) {
		return err
	}

	// A previous attempt may have succeeded without its outcome being recorded.
	existing, findErr := e.ledger.FindByOrder(ctx, p.OrderID)
	if findErr != nil {
		return errors.Join(err, findErr)
	}
	if existing.CourierID != p.CourierID {
		return fmt.Errorf("order %d is assigned to courier %d: %w", p.OrderID, existing.CourierID, err)
	}
	e.logger.InfoContext(ctx, "delivery already exists for the same courier",
		"order_id", p.OrderID, "courier_id", p.CourierID, "delivery_id", existing.ID)
	return nil
}

func (e *SideEffectExecutor) cancelDelivery(ctx context.Context, m *outbox.Message) error {
	var p outbox.CancelDeliveryPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}

	active, err := e.ledger.FindActiveByCourier(ctx, p.CourierID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	target, ok := deliveryOfOrder(active, p.OrderID)
	if !ok {
		e.logger.WarnContext(ctx, "no active delivery to deactivate",
			"order_id", p.OrderID, "courier_id", p.CourierID, "active_deliveries", len(active))
		return nil
	}

	if err = e.ledger.DeactivateDelivery(ctx, target.ID); err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "delivery deactivated",
		"order_id", p.OrderID, "courier_id", p.CourierID, "delivery_id", target.ID)
	return nil
}

func (e *SideEffectExecutor) advanceDelivery(ctx context.Context, m *outbox.Message) error {
	var p outbox.AdvanceDeliveryPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}

	d, err := e.ledger.FindByOrder(ctx, p.OrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		e.logger.DebugContext(ctx, "order has no delivery to advance", "order_id", p.OrderID)
		return nil
	}
	if err != nil {
		return err
	}
	if !d.Active || d.Status == p.Status {
		return nil
	}

	return e.ledger.AdvanceDelivery(ctx, d.ID, p.Status)
}

func (e *SideEffectExecutor) notifyRestaurant(ctx context.Context, m *outbox.Message) error {
	var p outbox.NotifyRestaurantPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}

	restaurant, err := e.directory.GetRestaurant(ctx, p.RestaurantID)
	if err != nil {
		return fmt.Errorf("resolve owner of restaurant %d: %w", p.RestaurantID, err)
	}

	return e.notifier.NotifyRestaurant(ctx, p.RestaurantID, restaurant.OwnerID, p.Message)
}

func (e *SideEffectExecutor) notifyCustomer(ctx context.Context, m *outbox.Message) error {
	var p outbox.NotifyCustomerPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}
	return e.notifier.NotifyUser(ctx, p.CustomerID, p.Message)
}

func (e *SideEffectExecutor) publishEvent(ctx context.Context, m *outbox.Message) error {
	var p outbox.OrderEventPayload
	if err := m.Decode(&p); err != nil {
		return backoff.Permanent(err)
	}
	return e.publisher.Publish(ctx, p)
}

func deliveryOfOrder(deliveries []ports.LedgerDelivery, orderID kernel.ID) (ports.LedgerDelivery, bool) {
	for _, d := range deliveries {
		if d.OrderID == orderID {
			return d, true
		}
	}
	return ports.LedgerDelivery{}, false
}
