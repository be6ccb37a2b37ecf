package commands_test

import (
	"errors"
	"testing"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRunnerFixture() (*MockExecutor, *MockOutboxRepository, *MockUoW, *commands.SideEffectRunner) {
	executor := new(MockExecutor)
	repo := new(MockOutboxRepository)
	uow := new(MockUoW)
	factory := new(MockOutboxUoWFactory)
	factory.On("Create").Return(uow)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("OutboxRepository").Return(repo)
	uow.On("Rollback", mock.Anything).Return(nil)

	policy := commands.NewRetryPolicy(3, time.Second, time.Minute).WithRandomization(0)
	return executor, repo, uow, commands.NewSideEffectRunner(factory, executor, policy, discardLogger())
}

func TestSideEffectRunner_RecordsSuccess(t *testing.T) {
	executor, repo, uow, runner := newRunnerFixture()
	m := newMessage(t, outbox.KindNotifyCustomer, outbox.NotifyCustomerPayload{OrderID: 42, CustomerID: 1})

	executor.On("Execute", mock.Anything, m, false).Return(nil).Once()
	repo.On("Update", mock.Anything, m).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	require.NoError(t, runner.Run(t.Context(), m, false))
	assert.Equal(t, outbox.StatusDone, m.Status())
	require.NotNil(t, m.ProcessedAt())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSideEffectRunner_RecordsFailure(t *testing.T) {
	executor, repo, uow, runner := newRunnerFixture()
	m := newMessage(t, outbox.KindCreateDelivery, outbox.CreateDeliveryPayload{OrderID: 42, CourierID: 7})
	conflict := errs.NewConflictError("delivery for order", 42)

	executor.On("Execute", mock.Anything, m, true).Return(conflict).Once()
	repo.On("Update", mock.Anything, m).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	err := runner.Run(t.Context(), m, true)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, outbox.StatusFailed, m.Status())
	assert.Equal(t, 1, m.Attempts())
}

func TestSideEffectRunner_RecordingFailureDoesNotMaskSuccess(t *testing.T) {
	executor, repo, uow, runner := newRunnerFixture()
	m := newMessage(t, outbox.KindNotifyCustomer, outbox.NotifyCustomerPayload{OrderID: 42, CustomerID: 1})

	executor.On("Execute", mock.Anything, m, false).Return(nil).Once()
	repo.On("Update", mock.Anything, m).Return(errors.New("db gone")).Once()

	require.NoError(t, runner.Run(t.Context(), m, false))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
