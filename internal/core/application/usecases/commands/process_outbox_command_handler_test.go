package commands_test

import (
	"errors"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewProcessOutboxCommand_Validation(t *testing.T) {
	_, err := commands.NewProcessOutboxCommand(nil, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kinds")
	assert.Contains(t, err.Error(), "batch size")
	assert.Contains(t, err.Error(), "lease")

	_, err = commands.NewProcessOutboxCommand([]outbox.Kind{"bogus"}, 10, time.Minute)
	require.Error(t, err)
}

func TestProcessOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	done := newMessage(t, outbox.KindCreateDelivery, outbox.CreateDeliveryPayload{OrderID: 42, CourierID: 7})
	retried := newMessage(t, outbox.KindCancelDelivery, outbox.CancelDeliveryPayload{OrderID: 43, CourierID: 7})
	failed := newMessage(t, outbox.KindAdvanceDelivery, outbox.AdvanceDeliveryPayload{OrderID: 44, Status: "picked_up"})

	repo := new(MockOutboxRepository)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)
	runner := new(MockMessageRunner)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(repo).Once()
	repo.On("ClaimDue", ctx, outbox.DeliveryKinds(), mock.AnythingOfType("time.Time"), 10).
		Return([]*outbox.Message{done, retried, failed}, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil).Times(3)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	runner.On("Run", ctx, done, true).Run(func(mock.Arguments) { done.MarkDone(time.Now()) }).Return(nil).Once()
	runner.On("Run", ctx, retried, true).
		Run(func(mock.Arguments) { retried.MarkRetry(errors.New("timeout"), time.Now().Add(time.Minute)) }).
		Return(errors.New("timeout")).Once()
	runner.On("Run", ctx, failed, true).
		Run(func(mock.Arguments) { failed.MarkFailed(errors.New("rejected"), time.Now()) }).
		Return(errors.New("rejected")).Once()

	cmd, err := commands.NewProcessOutboxCommand(outbox.DeliveryKinds(), 10, time.Minute)
	require.NoError(t, err)

	before := time.Now()
	result, err := commands.NewProcessOutboxCommandHandler(factory, runner).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ProcessOutboxResult{Claimed: 3, Done: 1, Retried: 1, Failed: 1}, result)
	assert.True(t, retried.NextAttemptAt().After(before.Add(50*time.Second)))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	runner.AssertExpectations(t)
}

func TestProcessOutboxCommandHandler_Handle_ClaimError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOutboxRepository)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)
	runner := new(MockMessageRunner)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OutboxRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("ClaimDue", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("locked")).Once()

	cmd, err := commands.NewProcessOutboxCommand(outbox.NotificationKinds(), 5, time.Minute)
	require.NoError(t, err)

	_, err = commands.NewProcessOutboxCommandHandler(factory, runner).Handle(ctx, cmd)
	require.EqualError(t, err, "locked")
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}
