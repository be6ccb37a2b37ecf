package outboxrepo

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(m))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update writes the processing state. Kind and payload are immutable.
func (r *GormOutboxRepository) Update(ctx context.Context, m *outbox.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", m.ID().Raw()).
		Updates(map[string]any{
			"status":          m.Status().String(),
			"attempts":        m.Attempts(),
			"last_error":      m.LastError(),
			"next_attempt_at": m.NextAttemptAt(),
			"processed_at":    m.ProcessedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", m.ID())
	}

	return nil
}

func (r *GormOutboxRepository) Get(ctx context.Context, id kernel.UUID) (*outbox.Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MessageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("outbox message", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimDue selects due pending messages with FOR UPDATE SKIP LOCKED, so concurrent
// workers never pick the same row. Dialects without row locks ignore the clause.
func (r *GormOutboxRepository) ClaimDue(
	ctx context.Context,
	kinds []outbox.Kind,
	now time.Time,
	limit int,
) ([]*outbox.Message, error) {
	if len(kinds) == 0 || limit <= 0 {
		return nil, nil
	}

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND kind IN ? AND next_attempt_at <= ?", outbox.StatusPending.String(), names, now.UTC()).
		Order("next_attempt_at, created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []MessageDTO) ([]*outbox.Message, error) {
	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, nil
}
