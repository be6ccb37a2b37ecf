package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxOutboxPageSize caps ListOutboxMessagesQuery.
const MaxOutboxPageSize = 500

var ErrListOutboxMessagesQueryIsNotConstructed = errors.New(
	"ListOutboxMessagesQuery must be created via NewListOutboxMessagesQuery constructor",
)

// ListOutboxMessagesQuery lists outbox messages in one status, typically failed ones
// awaiting manual reconciliation.
type ListOutboxMessagesQuery struct {
	status outbox.Status
	limit  int

	guard guard.ConstructorGuard
}

func NewListOutboxMessagesQuery(status outbox.Status, limit int) (ListOutboxMessagesQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOutboxMessagesQuery{}, err
	}
	if limit < 1 || limit > MaxOutboxPageSize {
		return ListOutboxMessagesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOutboxPageSize)
	}
	return ListOutboxMessagesQuery{status: status, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOutboxMessagesQuery) Validate() error {
	return q.guard.Validate(ErrListOutboxMessagesQueryIsNotConstructed)
}

// ListOutboxMessagesQueryResponse is one row of the listing.
type ListOutboxMessagesQueryResponse struct {
	ID            uuid.UUID
	OrderID       int64
	Kind          string
	Status        string
	Attempts      int
	LastError     string
	Payload       json.RawMessage
	NextAttemptAt time.Time
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}

// ListOutboxMessagesQueryHandler reads the outbox table directly.
type ListOutboxMessagesQueryHandler struct {
	db *gorm.DB
}

func NewListOutboxMessagesQueryHandler(db *gorm.DB) ListOutboxMessagesQueryHandler {
	return ListOutboxMessagesQueryHandler{db: db}
}

// Handle returns messages oldest first.
func (h ListOutboxMessagesQueryHandler) Handle(
	ctx context.Context,
	q ListOutboxMessagesQuery,
) ([]ListOutboxMessagesQueryResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	messages := make([]ListOutboxMessagesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			kind,
			status,
			attempts,
			last_error,
			payload,
			next_attempt_at,
			created_at,
			processed_at
		FROM outbox_messages
		WHERE status = ?
		ORDER BY created_at, id
		LIMIT ?
	`, q.status.String(), q.limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp        ListOutboxMessagesQueryResponse
			payload     string
			processedAt sql.NullTime
		)

		err = rows.Scan(
			&resp.ID,
			&resp.OrderID,
			&resp.Kind,
			&resp.Status,
			&resp.Attempts,
			&resp.LastError,
			&payload,
			&resp.NextAttemptAt,
			&resp.CreatedAt,
			&processedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.Payload = json.RawMessage(payload)
		if processedAt.Valid {
			ts := processedAt.Time
			resp.ProcessedAt = &ts
		}
		messages = append(messages, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
