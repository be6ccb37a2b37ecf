package commands

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy decides what happens to an outbox message whose side effect failed.
//
// Rejections (conflict, not found, validation, or errors wrapped with backoff.Permanent)
// fail the message right away; they need an operator, not another attempt. Anything else
// is retried with exponential backoff until maxAttempts executions have failed.
type RetryPolicy struct {
	maxAttempts   int
	initial       time.Duration
	maxInterval   time.Duration
	randomization float64
}

func NewRetryPolicy(maxAttempts int, initial, maxInterval time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return RetryPolicy{
		maxAttempts:   maxAttempts,
		initial:       initial,
		maxInterval:   maxInterval,
		randomization: backoff.DefaultRandomizationFactor,
	}
}

// WithRandomization returns a copy of p using the given jitter factor.
func (p RetryPolicy) WithRandomization(factor float64) RetryPolicy {
	p.randomization = factor
	return p
}

func (p RetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// Delay returns the wait before the attempt following the given number of failures.
func (p RetryPolicy) Delay(failures int) time.Duration {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.MaxInterval = p.maxInterval
	b.RandomizationFactor = p.randomization
	b.MaxElapsedTime = 0
	b.Reset()

	d := b.InitialInterval
	for i := 0; i < failures; i++ {
		d = b.NextBackOff()
	}
	return d
}

func (p RetryPolicy) IsPermanent(err error) bool {
	var permanent *backoff.PermanentError
	return errors.As(err, &permanent) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errs.IsValidation(err)
}

// Apply records a failed execution of m at now.
func (p RetryPolicy) Apply(m *outbox.Message, err error, now time.Time) {
	failures := m.Attempts() + 1
	if p.IsPermanent(err) || failures >= p.maxAttempts {
		m.MarkFailed(err, now)
		return
	}
	m.MarkRetry(err, now.Add(p.Delay(failures)))
}
