package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/outbox"
)

// ProcessOutboxResult counts what happened to the claimed messages.
type ProcessOutboxResult struct {
	Claimed int
	Done    int
	Retried int
	Failed  int
}

// ProcessOutboxCommandHandler is the worker behind the outbox jobs. Messages are
// claimed in a short transaction and then run one by one as redeliveries.
type ProcessOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	runner     MessageRunner
}

func NewProcessOutboxCommandHandler(uowFactory OutboxUoWFactory, runner MessageRunner) ProcessOutboxCommandHandler {
	return ProcessOutboxCommandHandler{uowFactory: uowFactory, runner: runner}
}

func (h ProcessOutboxCommandHandler) Handle(ctx context.Context, cmd ProcessOutboxCommand) (ProcessOutboxResult, error) {
	var result ProcessOutboxResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	messages, err := h.claim(ctx, cmd)
	if err != nil {
		return result, err
	}
	result.Claimed = len(messages)

	for _, m := range messages {
		if ctx.Err() != nil {
			break
		}
		_ = h.runner.Run(ctx, m, true)

		switch {
		case m.Status() == outbox.StatusDone:
			result.Done++
		case m.Status() == outbox.StatusFailed:
			result.Failed++
		default:
			result.Retried++
		}
	}

	return result, nil
}

func (h ProcessOutboxCommandHandler) claim(ctx context.Context, cmd ProcessOutboxCommand) ([]*outbox.Message, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	repo := uow.OutboxRepository()
	messages, err := repo.ClaimDue(ctx, cmd.Kinds(), now, cmd.BatchSize())
	if err != nil {
		return nil, err
	}

	for _, m := range messages {
		m.Lease(now.Add(cmd.Lease()))
		if err = repo.Update(ctx, m); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}
