package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/delivery"
)

type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewChangeDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{uowFactory: uowFactory}
}

// Handle returns the delivery after the change. Repeating a change, including
// deactivating an inactive delivery, succeeds without writing.
func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
) (*delivery.Delivery, error) {
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
	d, err := repo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	var changed bool
	if cmd.Status() == delivery.Cancelled {
		changed = d.Deactivate()
	} else if changed, err = d.Advance(cmd.Status(), time.Now()); err != nil {
		return nil, err
	}

	if !changed {
		return d, nil
	}

	if err = repo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
