package queries

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrFindDeliveriesQueryIsNotConstructed = errors.New(
	"FindDeliveriesQuery must be created via NewFindDeliveriesQuery constructor",
)

// DeliveryReader is the read side of the delivery repository.
type DeliveryReader interface {
	Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error)
	Find(ctx context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error)
}

// FindDeliveriesQuery lists ledger deliveries by courier and/or order, optionally only
// active ones. At least one of courier or order is required.
type FindDeliveriesQuery struct {
	filter ports.DeliveryFilter

	guard guard.ConstructorGuard
}

func NewFindDeliveriesQuery(courierID, orderID kernel.ID, active *bool) (FindDeliveriesQuery, error) {
	if courierID == 0 && orderID == 0 {
		return FindDeliveriesQuery{}, errs.NewValueIsRequiredError("courier_id or order_id")
	}
	if err := errors.Join(validateOptional("courier_id", courierID), validateOptional("order_id", orderID)); err != nil {
		return FindDeliveriesQuery{}, err
	}

	return FindDeliveriesQuery{
		filter: ports.DeliveryFilter{CourierID: courierID, OrderID: orderID, Active: active},
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q FindDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrFindDeliveriesQueryIsNotConstructed)
}

func (q FindDeliveriesQuery) Filter() ports.DeliveryFilter {
	return q.filter
}

type FindDeliveriesQueryHandler struct {
	deliveries DeliveryReader
}

func NewFindDeliveriesQueryHandler(deliveries DeliveryReader) FindDeliveriesQueryHandler {
	return FindDeliveriesQueryHandler{deliveries: deliveries}
}

func (h FindDeliveriesQueryHandler) Handle(ctx context.Context, q FindDeliveriesQuery) ([]*delivery.Delivery, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.deliveries.Find(ctx, q.Filter())
}

// GetDeliveryQueryHandler reads a single delivery.
type GetDeliveryQueryHandler struct {
	deliveries DeliveryReader
}

func NewGetDeliveryQueryHandler(deliveries DeliveryReader) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{deliveries: deliveries}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return h.deliveries.Get(ctx, id)
}
