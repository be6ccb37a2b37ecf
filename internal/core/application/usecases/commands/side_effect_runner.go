package commands

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/outbox"
)

// Executor performs the side effect of an outbox message.
type Executor interface {
	Execute(ctx context.Context, m *outbox.Message, redelivery bool) error
}

// SideEffectRunner executes an outbox message and records the outcome on it in its
// own transaction.
type SideEffectRunner struct {
	uowFactory OutboxUoWFactory
	executor   Executor
	policy     RetryPolicy
	logger     *slog.Logger
}

func NewSideEffectRunner(
	uowFactory OutboxUoWFactory,
	executor Executor,
	policy RetryPolicy,
	logger *slog.Logger,
) *SideEffectRunner {
	return &SideEffectRunner{
		uowFactory: uowFactory,
		executor:   executor,
		policy:     policy,
		logger:     logger.With("component", "side_effect_runner"),
	}
}

// Run returns the execution error. A failure to record the outcome is only logged:
// the message then stays pending and is picked up again as a redelivery.
func (r *SideEffectRunner) Run(ctx context.Context, m *outbox.Message, redelivery bool) error {
	execErr := r.executor.Execute(ctx, m, redelivery)

	now := time.Now()
	if execErr == nil {
		m.MarkDone(now)
	} else {
		r.policy.Apply(m, execErr, now)
		r.logger.WarnContext(ctx, "side effect failed",
			"message_id", m.ID().String(),
			"order_id", m.OrderID(),
			"kind", m.Kind().String(),
			"attempts", m.Attempts(),
			"status", m.Status().String(),
			"error", execErr,
		)
	}

	if err := r.record(context.WithoutCancel(ctx), m); err != nil {
		r.logger.ErrorContext(ctx, "failed to record side effect outcome",
			"message_id", m.ID().String(), "kind", m.Kind().String(), "error", err)
	}

	return execErr
}

func (r *SideEffectRunner) record(ctx context.Context, m *outbox.Message) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OutboxRepository().Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
