package delivery

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrDeliveryAlreadyPersisted is returned when an identifier is assigned twice.
	ErrDeliveryAlreadyPersisted = errors.New("delivery already has an identifier")
)

// Delivery is a courier's assignment to fulfil one order.
//
// Business rules:
//   - Courier and order references are positive identifiers
//   - A new delivery starts Assigned (active)
//   - PickedUp records the pickup time, Delivered records the delivery time
//   - Cancelled and Delivered are final; deactivating them again is a no-op
//
// The ledger additionally guarantees at most one delivery per order id; that rule
// spans aggregates and lives in the repository and the create handler.
type Delivery struct {
	id           kernel.ID
	courierID    kernel.ID
	orderID      kernel.ID
	status       Status
	pickupTime   *time.Time
	deliveryTime *time.Time
	totalPrice   kernel.Money
	address      kernel.Address
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewDelivery assigns courierID to orderID.
func NewDelivery(
	courierID, orderID kernel.ID,
	totalPrice kernel.Money,
	address kernel.Address,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:     Assigned,
		totalPrice: totalPrice,
		address:    address,
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setCourierID(courierID),
		d.setOrderID(orderID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a persisted delivery.
func RestoreDelivery(
	id, courierID, orderID kernel.ID,
	status Status,
	pickupTime, deliveryTime *time.Time,
	totalPrice kernel.Money,
	address kernel.Address,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		id:           id,
		pickupTime:   pickupTime,
		deliveryTime: deliveryTime,
		totalPrice:   totalPrice,
		address:      address,
		createdAt:    createdAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		d.setCourierID(courierID),
		d.setOrderID(orderID),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// MarkPersisted records the identifier assigned by storage. It may be called once.
func (d *Delivery) MarkPersisted(id kernel.ID) error {
	if d.id != 0 {
		return ErrDeliveryAlreadyPersisted
	}
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) ID() kernel.ID            { return d.id }
func (d *Delivery) CourierID() kernel.ID     { return d.courierID }
func (d *Delivery) OrderID() kernel.ID       { return d.orderID }
func (d *Delivery) Status() Status           { return d.status }
func (d *Delivery) IsActive() bool           { return d.status.IsActive() }
func (d *Delivery) PickupTime() *time.Time   { return d.pickupTime }
func (d *Delivery) DeliveryTime() *time.Time { return d.deliveryTime }
func (d *Delivery) TotalPrice() kernel.Money { return d.totalPrice }
func (d *Delivery) Address() kernel.Address  { return d.address }
func (d *Delivery) CreatedAt() time.Time     { return d.createdAt }

// Deactivate cancels an active delivery. Calling it on an inactive delivery changes
// nothing and reports false.
func (d *Delivery) Deactivate() bool {
	if !d.IsActive() {
		return false
	}
	d.status = Cancelled
	return true
}

// Advance moves the delivery to next, stamping pickup or delivery time at now.
// Moving to the current status is a no-op that reports false. Advancing to Cancelled
// behaves like Deactivate.
func (d *Delivery) Advance(next Status, now time.Time) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	if next == d.status {
		return false, nil
	}
	if next == Cancelled {
		return d.Deactivate(), nil
	}
	if !d.status.canMoveTo(next) {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("transition from %s to %s is not allowed", d.status, next),
		)
	}

	ts := now.UTC()
	switch next {
	case PickedUp:
		d.pickupTime = &ts
	case Delivered:
		d.deliveryTime = &ts
	}
	d.status = next
	return true, nil
}

func (d *Delivery) setCourierID(id kernel.ID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier id", fmt.Errorf("%d is not a positive integer", id))
	}
	d.courierID = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.ID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive integer", id))
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.status = s
	return nil
}
