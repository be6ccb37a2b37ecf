package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/outbox"

	"github.com/robfig/cron/v3"
)

// OutboxProcessor claims and runs due outbox messages.
type OutboxProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessOutboxCommand) (commands.ProcessOutboxResult, error)
}

// OutboxJobConfig tunes one outbox job. Schedule is a six-field cron expression.
type OutboxJobConfig struct {
	Schedule  string
	BatchSize int
	Lease     time.Duration
}

// outboxJob drains the outbox for a set of kinds on a cron schedule. Runs never
// overlap; a trigger that arrives during a run causes one more run right after it.
type outboxJob struct {
	name      string
	schedule  string
	processor OutboxProcessor
	cmd       commands.ProcessOutboxCommand
	cron      *cron.Cron
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending atomic.Bool
}

func newOutboxJob(
	name string,
	kinds []outbox.Kind,
	processor OutboxProcessor,
	cfg OutboxJobConfig,
	logger *slog.Logger,
) (*outboxJob, error) {
	cmd, err := commands.NewProcessOutboxCommand(kinds, cfg.BatchSize, cfg.Lease)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &outboxJob{
		name:      name,
		schedule:  cfg.Schedule,
		processor: processor,
		cmd:       cmd,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", name),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func (j *outboxJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Trigger); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "job started", "schedule", j.schedule)
	return nil
}

// Stop cancels the running batch and waits for it to return.
func (j *outboxJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.mu.Lock()
	defer j.mu.Unlock()
	j.logger.Info("job stopped")
}

// Trigger runs the job now unless it is already running.
func (j *outboxJob) Trigger() {
	j.pending.Store(true)
	if !j.mu.TryLock() {
		return
	}
	defer j.mu.Unlock()

	for j.pending.Swap(false) {
		if j.ctx.Err() != nil {
			return
		}
		j.runOnce()
	}
}

func (j *outboxJob) runOnce() {
	result, err := j.processor.Handle(j.ctx, j.cmd)
	if err != nil {
		if j.ctx.Err() == nil {
			j.logger.ErrorContext(j.ctx, "outbox batch failed", "error", err)
		}
		return
	}
	if result.Claimed == 0 {
		return
	}

	j.logger.InfoContext(j.ctx, "outbox batch processed",
		"claimed", result.Claimed,
		"done", result.Done,
		"retried", result.Retried,
		"failed", result.Failed,
	)

	// A full batch means more messages are probably due.
	if result.Claimed >= j.cmd.BatchSize() {
		j.pending.Store(true)
	}
}
