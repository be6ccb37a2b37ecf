package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/pkg/errs"
)

// MessageRunner executes an outbox message and records its outcome.
type MessageRunner interface {
	Run(ctx context.Context, m *outbox.Message, redelivery bool) error
}

// TransitionOrderCommandHandler applies status and price changes to an order.
//
// The order row is locked, changed and committed together with the side effects the
// change produces. Required side effects (delivery creation and cancellation) are then
// run right away. When one of them fails the order change stays committed and the
// handler returns the updated order along with an errs.PartialFailureError; the message
// stays in the outbox for reconciliation.
//
// Example:
//
//	st := order.WaitingForPickup
//	courier := kernel.ID(7)
//	cmd, _ := NewTransitionOrderCommand(orderID, &st, nil, &courier)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPartialFailure) {
//	    // o already reads waiting_for_pickup
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.SideEffectPlanner
	policy     order.TransitionPolicy
	runner     MessageRunner
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	planner services.SideEffectPlanner,
	policy order.TransitionPolicy,
	runner MessageRunner,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		policy:     policy,
		runner:     runner,
	}
}

// Handle returns the updated order. On partial failure both the order and the error
// are returned.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, messages, err := h.apply(ctx, cmd)
	if err != nil {
		return nil, err
	}

	for _, m := range messages {
		if !m.Kind().IsRequired() {
			continue
		}
		if err = h.runner.Run(ctx, m, false); err != nil {
			return o, errs.NewPartialFailureError(m.Kind().String(), o.ID(), err)
		}
	}

	return o, nil
}

func (h TransitionOrderCommandHandler) apply(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, []*outbox.Message, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	previous := o.Status()
	dirty := false

	if price, ok := cmd.TotalPrice(); ok {
		if err = o.ChangeTotalPrice(price); err != nil {
			return nil, nil, err
		}
		dirty = true
	}

	requested, ok := cmd.Status()
	if ok {
		changed, trErr := o.Transition(requested, h.policy)
		if trErr != nil {
			return nil, nil, trErr
		}
		dirty = dirty || changed
	}

	if dirty {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, nil, err
		}
	}

	messages, err := h.planner.PlanTransition(o, services.TransitionRequest{
		Previous:  previous,
		Requested: requested,
		CourierID: cmd.CourierID(),
	}, time.Now())
	if err != nil {
		return nil, nil, err
	}

	if len(messages) > 0 {
		if err = uow.OutboxRepository().Add(ctx, messages...); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, messages, nil
}
