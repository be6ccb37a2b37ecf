package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// OrderReader is the read side of the order repository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)
	GetUnscoped(ctx context.Context, id kernel.ID) (*order.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID kernel.ID) ([]*order.Order, error)
	ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error)
}

// GetOrderQuery reads one order. includeDeleted allows reading soft-deleted orders
// for audit.
type GetOrderQuery struct {
	orderID        kernel.ID
	includeDeleted bool

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.ID, includeDeleted bool) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, includeDeleted: includeDeleted, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.ID {
	return q.orderID
}

func (q GetOrderQuery) IncludeDeleted() bool {
	return q.includeDeleted
}

type GetOrderQueryHandler struct {
	orders   OrderReader
	enricher *Enricher
}

func NewGetOrderQueryHandler(orders OrderReader, enricher *Enricher) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, enricher: enricher}
}

// Handle returns the enriched order or an errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, q GetOrderQuery) (EnrichedOrder, error) {
	if err := q.Validate(); err != nil {
		return EnrichedOrder{}, err
	}

	get := h.orders.Get
	if q.IncludeDeleted() {
		get = h.orders.GetUnscoped
	}

	o, err := get(ctx, q.OrderID())
	if err != nil {
		return EnrichedOrder{}, err
	}

	return h.enricher.Enrich(ctx, o), nil
}
