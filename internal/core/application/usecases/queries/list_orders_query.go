package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders of exactly one restaurant or one customer.
type ListOrdersQuery struct {
	restaurantID kernel.ID
	customerID   kernel.ID

	guard guard.ConstructorGuard
}

// NewListOrdersQuery takes zero for the filter that is not used.
func NewListOrdersQuery(restaurantID, customerID kernel.ID) (ListOrdersQuery, error) {
	switch {
	case restaurantID == 0 && customerID == 0:
		return ListOrdersQuery{}, errs.NewValueIsRequiredError("restaurant_id or customer_id")
	case restaurantID != 0 && customerID != 0:
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"filter",
			errors.New("restaurant_id and customer_id are mutually exclusive"),
		)
	}
	if err := errors.Join(validateOptional("restaurant_id", restaurantID), validateOptional("customer_id", customerID)); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{restaurantID: restaurantID, customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) RestaurantID() kernel.ID {
	return q.restaurantID
}

func (q ListOrdersQuery) CustomerID() kernel.ID {
	return q.customerID
}

type ListOrdersQueryHandler struct {
	orders   OrderReader
	enricher *Enricher
}

func NewListOrdersQueryHandler(orders OrderReader, enricher *Enricher) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, enricher: enricher}
}

// Handle returns enriched orders, newest first. Enrichment failures are isolated per order.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]EnrichedOrder, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	list := h.orders.ListByCustomer
	id := q.CustomerID()
	if q.RestaurantID() != 0 {
		list = h.orders.ListByRestaurant
		id = q.RestaurantID()
	}

	orders, err := list(ctx, id)
	if err != nil {
		return nil, err
	}

	return h.enricher.EnrichAll(ctx, orders), nil
}

func validateOptional(name string, id kernel.ID) error {
	if id == 0 {
		return nil
	}
	_, err := kernel.NewID(name, id.Int64())
	return err
}
