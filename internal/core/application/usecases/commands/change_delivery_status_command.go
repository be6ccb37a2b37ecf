package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand moves a delivery along its lifecycle. Cancelled is the
// deactivation request.
type ChangeDeliveryStatusCommand struct {
	deliveryID kernel.ID
	status     delivery.Status

	guard guard.ConstructorGuard
}

func NewChangeDeliveryStatusCommand(deliveryID kernel.ID, status delivery.Status) (ChangeDeliveryStatusCommand, error) {
	if err := errors.Join(deliveryID.Validate(), status.Validate()); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}
	return ChangeDeliveryStatusCommand{
		deliveryID: deliveryID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

func (c ChangeDeliveryStatusCommand) DeliveryID() kernel.ID   { return c.deliveryID }
func (c ChangeDeliveryStatusCommand) Status() delivery.Status { return c.status }
