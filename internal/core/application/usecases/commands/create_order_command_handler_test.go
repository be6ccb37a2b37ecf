package commands_test

import (
	"errors"
	"testing"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateCommand(t *testing.T, status order.Status) commands.CreateOrderCommand {
	t.Helper()
	price, err := kernel.MoneyFromFloat(1200)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(1, 5, status, price, []kernel.ID{10, 11}, kernel.Address{})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t, order.Unknown)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	var stored *order.Order
	var planned []*outbox.Message
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*order.Order)
				require.NoError(t, stored.MarkPersisted(42))
			}).
			Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.Anything).
			Run(func(args mock.Arguments) { planned = args.Get(1).([]*outbox.Message) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(42), id)

	require.NotNil(t, stored)
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, []kernel.ID{10, 11}, stored.ItemIDs())
	assert.Equal(t, []outbox.Kind{outbox.KindNotifyRestaurant, outbox.KindPublishEvent}, kindsOf(planned))

	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_InitialStatusPolicy(t *testing.T) {
	cmd := validCreateCommand(t, order.Confirmed)

	t.Run("strict rejects a non-pending initial status before writing", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)

		_, err := h.Handle(t.Context(), cmd)
		require.Error(t, err)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("permissive accepts it", func(t *testing.T) {
		ctx := t.Context()
		orderRepo := new(MockOrderRepository)
		outboxRepo := new(MockOutboxRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("OutboxRepository").Return(outboxRepo)
		uow.On("Commit", ctx).Return(nil)
		uow.On("Rollback", ctx).Return(nil)
		orderRepo.On("Add", ctx, mock.Anything).
			Run(func(args mock.Arguments) { _ = args.Get(1).(*order.Order).MarkPersisted(3) }).
			Return(nil)
		outboxRepo.On("Add", ctx, mock.Anything).Return(nil)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow)

		h := commands.NewCreateOrderCommandHandler(factory, planner, order.Permissive)
		id, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, kernel.ID(3), id)
	})
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t, order.Pending)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t, order.Pending)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_OutboxErrorRollsBackTheOrder(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t, order.Pending)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).
			Run(func(args mock.Arguments) { _ = args.Get(1).(*order.Order).MarkPersisted(1) }).
			Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.Anything).Return(errors.New("outbox error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, planner, order.Strict)
	_, err := h.Handle(ctx, cmd)
	require.EqualError(t, err, "outbox error")
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
