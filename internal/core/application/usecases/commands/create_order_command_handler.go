package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
)

// CreateOrderCommandHandler places orders.
//
// The order, one item row per item reference and the placement side effects (restaurant
// notification, order.created event) are written in a single transaction. Notification
// happens later through the outbox, so its failure can never fail placement.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.SideEffectPlanner
	policy     order.TransitionPolicy
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	planner services.SideEffectPlanner,
	policy order.TransitionPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		policy:     policy,
	}
}

// Handle persists the order and returns its identifier.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := h.policy.ValidateInitial(cmd.Status()); err != nil {
		return 0, err
	}

	now := time.Now()
	o, err := order.NewOrder(
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Status(),
		cmd.TotalPrice(),
		cmd.ItemIDs(),
		cmd.Address(),
		now,
	)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	messages, err := h.planner.PlanPlacement(o, now)
	if err != nil {
		return 0, err
	}

	if err = uow.OutboxRepository().Add(ctx, messages...); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
