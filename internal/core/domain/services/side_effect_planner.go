package services

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
)

// ErrOrderNotPersisted is returned when planning side effects for an order without an id.
var ErrOrderNotPersisted = errors.New("order must be persisted before planning side effects")

// deliveryStages maps order stages to the delivery status they imply.
var deliveryStages = map[order.Status]delivery.Status{
	order.ProductPickedUp:     delivery.PickedUp,
	order.ConfirmedByDelivery: delivery.Delivered,
}

// TransitionRequest describes the order change a caller asked for.
// Requested is order.Unknown when no status was supplied; CourierID is zero when no
// courier was supplied.
type TransitionRequest struct {
	Previous  order.Status
	Requested order.Status
	CourierID kernel.ID
}

// SideEffectPlanner decides which side effects an order change produces.
//
// Business rules:
//   - Placement notifies the restaurant and publishes order.created
//   - Requesting waiting_for_pickup with a courier creates a delivery
//   - Requesting cancelled with a courier deactivates that courier's delivery
//   - Reaching product_pickedup or confirmed_by_delivery advances the delivery
//   - Every actual status change notifies the customer and publishes order.status_changed
//
// Delivery creation and cancellation are required effects and get a claim delay, so the
// caller can run them inline before background jobs see them.
type SideEffectPlanner struct {
	claimDelay time.Duration
}

func NewSideEffectPlanner(claimDelay time.Duration) SideEffectPlanner {
	return SideEffectPlanner{claimDelay: claimDelay}
}

// PlanPlacement returns the messages for a newly placed order.
func (p SideEffectPlanner) PlanPlacement(o *order.Order, now time.Time) ([]*outbox.Message, error) {
	if err := p.validate(o); err != nil {
		return nil, err
	}

	b := newBatch(o.ID(), now)
	b.add(outbox.KindNotifyRestaurant, outbox.NotifyRestaurantPayload{
		OrderID:      o.ID(),
		RestaurantID: o.RestaurantID(),
		Message:      fmt.Sprintf("New order #%d received", o.ID()),
	}, 0)
	b.add(outbox.KindPublishEvent, event(outbox.EventOrderCreated, o, order.Unknown, now), 0)

	return b.result()
}

// PlanTransition returns the messages for an order that was just updated as described by req.
// o must already carry the new state.
func (p SideEffectPlanner) PlanTransition(o *order.Order, req TransitionRequest, now time.Time) ([]*outbox.Message, error) {
	if err := p.validate(o); err != nil {
		return nil, err
	}

	b := newBatch(o.ID(), now)

	if req.CourierID > 0 {
		switch req.Requested {
		case order.WaitingForPickup:
			b.add(outbox.KindCreateDelivery, outbox.CreateDeliveryPayload{
				OrderID:    o.ID(),
				CourierID:  req.CourierID,
				TotalPrice: o.TotalPrice().String(),
				Address:    o.Address().Ptr(),
			}, p.claimDelay)
		case order.Cancelled:
			b.add(outbox.KindCancelDelivery, outbox.CancelDeliveryPayload{
				OrderID:   o.ID(),
				CourierID: req.CourierID,
			}, p.claimDelay)
		}
	}

	if o.Status() == req.Previous {
		return b.result()
	}

	if stage, ok := deliveryStages[o.Status()]; ok {
		b.add(outbox.KindAdvanceDelivery, outbox.AdvanceDeliveryPayload{
			OrderID: o.ID(),
			Status:  stage.String(),
		}, 0)
	}
	b.add(outbox.KindNotifyCustomer, outbox.NotifyCustomerPayload{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Message:    fmt.Sprintf("Your order #%d is now %s", o.ID(), o.Status()),
	}, 0)
	b.add(outbox.KindPublishEvent, event(outbox.EventOrderStatusChanged, o, req.Previous, now), 0)

	return b.result()
}

func (p SideEffectPlanner) validate(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID() == 0 {
		return ErrOrderNotPersisted
	}
	return nil
}

func event(typ string, o *order.Order, previous order.Status, now time.Time) outbox.OrderEventPayload {
	e := outbox.OrderEventPayload{
		Type:         typ,
		OrderID:      o.ID(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		Status:       o.Status().String(),
		TotalPrice:   o.TotalPrice().String(),
		OccurredAt:   now.UTC(),
	}
	if previous != order.Unknown {
		e.PreviousStatus = previous.String()
	}
	return e
}

// batch collects messages and the first construction error.
type batch struct {
	orderID  kernel.ID
	now      time.Time
	messages []*outbox.Message
	err      error
}

func newBatch(orderID kernel.ID, now time.Time) *batch {
	return &batch{orderID: orderID, now: now}
}

func (b *batch) add(kind outbox.Kind, payload any, delay time.Duration) {
	if b.err != nil {
		return
	}
	m, err := outbox.NewMessage(b.orderID, kind, payload, b.now, delay)
	if err != nil {
		b.err = fmt.Errorf("plan %s: %w", kind, err)
		return
	}
	b.messages = append(b.messages, m)
}

func (b *batch) result() ([]*outbox.Message, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.messages, nil
}
