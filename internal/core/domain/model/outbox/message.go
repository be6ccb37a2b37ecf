package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// maxErrorLength bounds the error text kept on a message.
const maxErrorLength = 1024

// ErrMessageIsNotConstructed is returned when using an improperly initialized Message.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage constructor")

// Message is one side effect of an order change.
type Message struct {
	id      kernel.UUID
	orderID kernel.ID
	kind    Kind
	payload json.RawMessage
	status  Status

	// attempts counts executions that did not succeed
	attempts  int
	lastError string

	// nextAttemptAt is the earliest time a background job may claim the message
	nextAttemptAt time.Time
	createdAt     time.Time
	processedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewMessage creates a pending message for orderID. The payload is stored as JSON.
// A positive delay keeps background jobs away from the message for that long, which
// leaves room for an inline attempt right after the transaction commits.
func NewMessage(orderID kernel.ID, kind Kind, payload any, now time.Time, delay time.Duration) (*Message, error) {
	if err := errors.Join(orderID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("outbox payload", err)
	}

	now = now.UTC()
	return &Message{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		kind:          kind,
		payload:       raw,
		status:        StatusPending,
		nextAttemptAt: now.Add(delay),
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreMessage rebuilds a persisted message.
func RestoreMessage(
	id kernel.UUID,
	orderID kernel.ID,
	kind Kind,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	nextAttemptAt, createdAt time.Time,
	processedAt *time.Time,
) (*Message, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kind.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, "unbounded")
	}

	return &Message{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		payload:       append(json.RawMessage(nil), payload...),
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		nextAttemptAt: nextAttemptAt.UTC(),
		createdAt:     createdAt.UTC(),
		processedAt:   processedAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

func (m *Message) ID() kernel.UUID          { return m.id }
func (m *Message) OrderID() kernel.ID       { return m.orderID }
func (m *Message) Kind() Kind               { return m.kind }
func (m *Message) Payload() json.RawMessage { return m.payload }
func (m *Message) Status() Status           { return m.status }
func (m *Message) Attempts() int            { return m.attempts }
func (m *Message) LastError() string        { return m.lastError }
func (m *Message) NextAttemptAt() time.Time { return m.nextAttemptAt }
func (m *Message) CreatedAt() time.Time     { return m.createdAt }
func (m *Message) ProcessedAt() *time.Time  { return m.processedAt }
func (m *Message) IsSettled() bool          { return m.status != StatusPending }

// Decode unmarshals the payload into v.
func (m *Message) Decode(v any) error {
	if err := json.Unmarshal(m.payload, v); err != nil {
		return fmt.Errorf("decode %s payload of message %s: %w", m.kind, m.id, err)
	}
	return nil
}

// Lease hides a pending message from other claimers until the given time.
func (m *Message) Lease(until time.Time) {
	m.nextAttemptAt = until.UTC()
}

func (m *Message) MarkDone(now time.Time) {
	ts := now.UTC()
	m.status = StatusDone
	m.processedAt = &ts
}

// MarkRetry records a failed attempt and schedules the next one.
func (m *Message) MarkRetry(cause error, next time.Time) {
	m.attempts++
	m.lastError = truncate(cause)
	m.status = StatusPending
	m.nextAttemptAt = next.UTC()
}

// MarkFailed records a failed attempt and gives up on the message until it is re-armed.
func (m *Message) MarkFailed(cause error, now time.Time) {
	ts := now.UTC()
	m.attempts++
	m.lastError = truncate(cause)
	m.status = StatusFailed
	m.processedAt = &ts
}

// Rearm puts a failed message back in the queue with a fresh attempt budget.
func (m *Message) Rearm(now time.Time) error {
	if m.status != StatusFailed {
		return errs.NewValueIsInvalidErrorWithCause(
			"outbox status",
			fmt.Errorf("message %s is %s, only failed messages can be retried", m.id, m.status),
		)
	}
	m.status = StatusPending
	m.attempts = 0
	m.nextAttemptAt = now.UTC()
	m.processedAt = nil
	return nil
}

func truncate(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > maxErrorLength {
		return s[:maxErrorLength]
	}
	return s
}
