package ports

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"
)

// OutboxRepository stores side effects next to the order changes that caused them.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...*outbox.Message) error
	Update(ctx context.Context, message *outbox.Message) error
	Get(ctx context.Context, id kernel.UUID) (*outbox.Message, error)

	// ClaimDue locks up to limit pending messages of the given kinds whose next attempt
	// is due at now, skipping rows locked by other workers. Oldest first.
	ClaimDue(ctx context.Context, kinds []outbox.Kind, now time.Time, limit int) ([]*outbox.Message, error)
}
