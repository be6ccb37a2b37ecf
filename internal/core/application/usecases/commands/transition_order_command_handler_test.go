package commands_test

import (
	"errors"
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitionFixture struct {
	orderRepo  *MockOrderRepository
	outboxRepo *MockOutboxRepository
	uow        *MockUoW
	factory    *MockOrderUoWFactory
	runner     *MockMessageRunner
	planned    []*outbox.Message
}

func newTransitionFixture(t *testing.T) *transitionFixture {
	t.Helper()
	f := &transitionFixture{
		orderRepo:  new(MockOrderRepository),
		outboxRepo: new(MockOutboxRepository),
		uow:        new(MockUoW),
		factory:    new(MockOrderUoWFactory),
		runner:     new(MockMessageRunner),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("OutboxRepository").Return(f.outboxRepo)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	return f
}

func (f *transitionFixture) expectCommit() {
	f.outboxRepo.On("Add", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { f.planned = args.Get(1).([]*outbox.Message) }).
		Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *transitionFixture) handler(policy order.TransitionPolicy) commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(f.factory, planner, policy, f.runner)
}

func TestTransitionOrderCommandHandler_WaitingForPickupCreatesDelivery(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	current := persistedOrder(t, 42, order.Confirmed)

	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(current, nil).Once()
	f.orderRepo.On("Update", ctx, current).Return(nil).Once()
	f.expectCommit()
	f.runner.On("Run", ctx, mock.MatchedBy(func(m *outbox.Message) bool {
		return m.Kind() == outbox.KindCreateDelivery
	}), false).Return(nil).Once()

	cmd, err := commands.NewTransitionOrderCommand(42, statusPtr(order.WaitingForPickup), nil, idPtr(7))
	require.NoError(t, err)

	o, err := f.handler(order.Strict).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.WaitingForPickup, o.Status())
	assert.Equal(t,
		[]outbox.Kind{outbox.KindCreateDelivery, outbox.KindNotifyCustomer, outbox.KindPublishEvent},
		kindsOf(f.planned),
	)

	f.orderRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.runner.AssertExpectations(t)
	f.runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestTransitionOrderCommandHandler_LedgerRejectionIsPartialFailure(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	current := persistedOrder(t, 42, order.Confirmed)

	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(current, nil).Once()
	f.orderRepo.On("Update", ctx, current).Return(nil).Once()
	f.expectCommit()
	conflict := errs.NewConflictError("delivery for order", 42)
	f.runner.On("Run", ctx, mock.Anything, false).Return(conflict).Once()

	cmd, err := commands.NewTransitionOrderCommand(42, statusPtr(order.WaitingForPickup), nil, idPtr(7))
	require.NoError(t, err)

	o, err := f.handler(order.Strict).Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPartialFailure)
	assert.ErrorIs(t, err, errs.ErrConflict)

	var partial *errs.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "create_delivery", partial.Operation)

	require.NotNil(t, o, "the committed order is returned with the error")
	assert.Equal(t, order.WaitingForPickup, o.Status())
	f.uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_CancelWithCourier(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	current := persistedOrder(t, 42, order.WaitingForPickup)

	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(current, nil).Once()
	f.orderRepo.On("Update", ctx, current).Return(nil).Once()
	f.expectCommit()
	f.runner.On("Run", ctx, mock.MatchedBy(func(m *outbox.Message) bool {
		return m.Kind() == outbox.KindCancelDelivery
	}), false).Return(errors.New("ledger down")).Once()

	cmd, err := commands.NewTransitionOrderCommand(42, statusPtr(order.Cancelled), nil, idPtr(7))
	require.NoError(t, err)

	o, err := f.handler(order.Strict).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPartialFailure)
	assert.Contains(t, err.Error(), "cancel_delivery")
	assert.Equal(t, order.Cancelled, o.Status())
}

func TestTransitionOrderCommandHandler_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(9)).
		Return(nil, errs.NewObjectNotFoundError("order", 9)).Once()

	cmd, err := commands.NewTransitionOrderCommand(9, statusPtr(order.Confirmed), nil, nil)
	require.NoError(t, err)

	o, err := f.handler(order.Strict).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, o)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_IllegalTransitionWritesNothing(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(persistedOrder(t, 42, order.Pending), nil).Once()

	cmd, err := commands.NewTransitionOrderCommand(42, statusPtr(order.Completed), nil, nil)
	require.NoError(t, err)

	_, err = f.handler(order.Strict).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_PermissiveAllowsSkipping(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	current := persistedOrder(t, 42, order.Pending)
	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(current, nil).Once()
	f.orderRepo.On("Update", ctx, current).Return(nil).Once()
	f.expectCommit()

	cmd, err := commands.NewTransitionOrderCommand(42, statusPtr(order.Completed), nil, nil)
	require.NoError(t, err)

	o, err := f.handler(order.Permissive).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, o.Status())
	f.runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_PriceOnlyUpdate(t *testing.T) {
	ctx := t.Context()
	f := newTransitionFixture(t)
	current := persistedOrder(t, 42, order.Confirmed)
	f.orderRepo.On("GetForUpdate", ctx, kernel.ID(42)).Return(current, nil).Once()
	f.orderRepo.On("Update", ctx, current).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	price, err := kernel.MoneyFromString("15.5")
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(42, nil, &price, nil)
	require.NoError(t, err)

	o, err := f.handler(order.Strict).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "15.50", o.TotalPrice().String())
	assert.Equal(t, order.Confirmed, o.Status())
	f.outboxRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewTransitionOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(0, statusPtr(order.Unknown), nil, idPtr(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order id")
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "courier_id")

	cmd, err := commands.NewTransitionOrderCommand(1, nil, nil, nil)
	require.NoError(t, err)
	_, ok := cmd.Status()
	assert.False(t, ok)
	assert.Zero(t, cmd.CourierID())
}
