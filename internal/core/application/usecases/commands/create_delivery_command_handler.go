package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/pkg/errs"
)

// CreateDeliveryCommandHandler enforces at most one delivery per order: an existence
// lookup before the insert, backed by a unique index for concurrent inserts.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle returns the new delivery, or an errs.ConflictError when the order already
// has one.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	_, err := repo.FindByOrder(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return nil, errs.NewConflictError("delivery for order", cmd.OrderID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	d, err := delivery.NewDelivery(cmd.CourierID(), cmd.OrderID(), cmd.TotalPrice(), cmd.Address(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
