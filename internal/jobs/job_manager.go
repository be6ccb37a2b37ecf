package jobs

import (
	"context"
	"fmt"
	"sync"
)

// Waker delivers wake-up signals, typically database notifications, until ctx is done.
type Waker interface {
	Run(ctx context.Context, wake func())
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	relayJob          *OutboxRelayJob
	reconciliationJob *ReconciliationJob
	waker             Waker

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJobManager wires the jobs. waker may be nil, in which case the relay only polls.
func NewJobManager(relayJob *OutboxRelayJob, reconciliationJob *ReconciliationJob, waker Waker) *JobManager {
	return &JobManager{
		relayJob:          relayJob,
		reconciliationJob: reconciliationJob,
		waker:             waker,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	if err := jm.relayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if jm.waker != nil {
		ctx, cancel := context.WithCancel(context.Background())
		jm.cancel = cancel
		jm.wg.Add(1)
		go func() {
			defer jm.wg.Done()
			jm.waker.Run(ctx, func() { go jm.relayJob.Trigger() })
		}()
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.cancel != nil {
		jm.cancel()
		jm.wg.Wait()
	}
	jm.relayJob.Stop()
	jm.reconciliationJob.Stop()
}
