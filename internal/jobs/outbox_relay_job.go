package jobs

import (
	"log/slog"

	"foodorder/internal/core/domain/model/outbox"
)

// OutboxRelayJob delivers restaurant and customer notifications and order events.
// Besides its schedule it runs whenever Trigger is called, which the Postgres listener
// does when a message is written.
type OutboxRelayJob struct {
	*outboxJob
}

func NewOutboxRelayJob(processor OutboxProcessor, cfg OutboxJobConfig, logger *slog.Logger) (*OutboxRelayJob, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "* * * * * *"
	}
	job, err := newOutboxJob("outbox_relay_job", outbox.NotificationKinds(), processor, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &OutboxRelayJob{outboxJob: job}, nil
}
