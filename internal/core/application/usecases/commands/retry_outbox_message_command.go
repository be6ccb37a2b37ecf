package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/guard"
)

var ErrRetryOutboxMessageCommandIsNotConstructed = errors.New(
	"RetryOutboxMessageCommand must be created via NewRetryOutboxMessageCommand constructor",
)

// RetryOutboxMessageCommand re-arms a failed message after manual reconciliation.
type RetryOutboxMessageCommand struct {
	messageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRetryOutboxMessageCommand(messageID kernel.UUID) (RetryOutboxMessageCommand, error) {
	if err := messageID.Validate(); err != nil {
		return RetryOutboxMessageCommand{}, err
	}
	return RetryOutboxMessageCommand{messageID: messageID, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryOutboxMessageCommand) Validate() error {
	return c.guard.Validate(ErrRetryOutboxMessageCommandIsNotConstructed)
}

func (c RetryOutboxMessageCommand) MessageID() kernel.UUID {
	return c.messageID
}

type RetryOutboxMessageCommandHandler struct {
	uowFactory OutboxUoWFactory
}

func NewRetryOutboxMessageCommandHandler(uowFactory OutboxUoWFactory) RetryOutboxMessageCommandHandler {
	return RetryOutboxMessageCommandHandler{uowFactory: uowFactory}
}

// Handle makes the message due immediately with a fresh attempt budget.
func (h RetryOutboxMessageCommandHandler) Handle(
	ctx context.Context,
	cmd RetryOutboxMessageCommand,
) (*outbox.Message, error) {
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

	repo := uow.OutboxRepository()
	m, err := repo.Get(ctx, cmd.MessageID())
	if err != nil {
		return nil, err
	}

	if err = m.Rearm(time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, m); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return m, nil
}
