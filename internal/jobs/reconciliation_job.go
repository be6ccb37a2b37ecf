package jobs

import (
	"log/slog"

	"foodorder/internal/core/domain/model/outbox"
)

// ReconciliationJob retries ledger side effects whose inline attempt did not settle
// them: the ledger was down, the process crashed after commit, or the inline attempt
// failed with a retryable error.
type ReconciliationJob struct {
	*outboxJob
}

func NewReconciliationJob(processor OutboxProcessor, cfg OutboxJobConfig, logger *slog.Logger) (*ReconciliationJob, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "*/10 * * * * *"
	}
	job, err := newOutboxJob("reconciliation_job", outbox.DeliveryKinds(), processor, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &ReconciliationJob{outboxJob: job}, nil
}
