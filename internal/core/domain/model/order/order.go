package order

import (
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyPersisted is returned when an identifier is assigned twice.
	ErrOrderAlreadyPersisted = errors.New("order already has an identifier")
)

// Order is a customer's request for a set of items from one restaurant, tracked
// through the Status lifecycle.
//
// Order follows these invariants:
//   - Customer and restaurant references are positive identifiers
//   - At least one item reference exists and the set never changes after creation
//   - Total price is non-negative
//   - Status changes only through Transition, validated against a TransitionPolicy
//   - A terminal order accepts no further changes
type Order struct {
	// id is the surrogate key; zero until the order is persisted
	id kernel.ID

	customerID   kernel.ID
	restaurantID kernel.ID
	status       Status
	totalPrice   kernel.Money
	address      kernel.Address

	// itemIDs references catalog items; duplicates are kept as separate lines
	itemIDs []kernel.ID

	createdAt time.Time
	deletedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in the given initial status. The caller is expected to have
// checked the initial status against its TransitionPolicy.
//
// Example:
//
//	price, _ := kernel.MoneyFromFloat(1200)
//	o, err := order.NewOrder(1, 5, order.Pending, price, []kernel.ID{10, 11}, kernel.Address{}, time.Now())
func NewOrder(
	customerID, restaurantID kernel.ID,
	status Status,
	totalPrice kernel.Money,
	itemIDs []kernel.ID,
	address kernel.Address,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		totalPrice: totalPrice,
		address:    address,
		createdAt:  createdAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setStatus(status),
		o.setItemIDs(itemIDs),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order. It runs the same validation as NewOrder
// and additionally requires a valid identifier.
func RestoreOrder(
	id kernel.ID,
	customerID, restaurantID kernel.ID,
	status Status,
	totalPrice kernel.Money,
	itemIDs []kernel.ID,
	address kernel.Address,
	createdAt time.Time,
	deletedAt *time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	o, err := NewOrder(customerID, restaurantID, status, totalPrice, itemIDs, address, createdAt)
	if err != nil {
		return nil, err
	}
	o.id = id
	o.deletedAt = deletedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// MarkPersisted records the identifier assigned by storage. It may be called once.
func (o *Order) MarkPersisted(id kernel.ID) error {
	if o.id != 0 {
		return ErrOrderAlreadyPersisted
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) CustomerID() kernel.ID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.ID {
	return o.restaurantID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

func (o *Order) Address() kernel.Address {
	return o.address
}

// ItemIDs returns a copy of the item references.
func (o *Order) ItemIDs() []kernel.ID {
	out := make([]kernel.ID, len(o.itemIDs))
	copy(out, o.itemIDs)
	return out
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeletedAt is set for soft-deleted orders read for audit.
func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil
}

// Progress is the completion ratio of the current status, see Status.Progress.
func (o *Order) Progress() float64 {
	return o.status.Progress()
}

// Transition moves the order to next if policy allows it.
// It reports whether the status actually changed.
func (o *Order) Transition(next Status, policy TransitionPolicy) (bool, error) {
	if err := o.status.ValidateTransition(next, policy); err != nil {
		return false, err
	}
	if o.status == next {
		return false, nil
	}
	o.status = next
	return true, nil
}

// ChangeTotalPrice replaces the total price of a non-terminal order.
func (o *Order) ChangeTotalPrice(price kernel.Money) error {
	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"total price",
			fmt.Errorf("order is %s and can no longer be changed", o.status),
		)
	}
	o.totalPrice = price
	return nil
}

func (o *Order) setCustomerID(id kernel.ID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("customer id", fmt.Errorf("%d is not a positive integer", id))
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.ID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", fmt.Errorf("%d is not a positive integer", id))
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setItemIDs(ids []kernel.ID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("an order needs at least one item"))
	}
	for i, id := range ids {
		if id <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("item at position %d: %d is not a positive integer", i, id),
			)
		}
	}
	o.itemIDs = make([]kernel.ID, len(ids))
	copy(o.itemIDs, ids)
	return nil
}
