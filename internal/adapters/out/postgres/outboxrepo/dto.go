// Package outboxrepo persists outbox messages with GORM.
package outboxrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// TableName is also the notification channel the relay listens on.
const TableName = "outbox_messages"

// MessageDTO is the row of the outbox_messages table. Payload is kept as text in Go so the
// same model works on SQLite; on Postgres the column is jsonb.
type MessageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       int64     `gorm:"not null;index"`
	Kind          string    `gorm:"type:varchar(32);not null"`
	Payload       string    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(16);not null;index:idx_outbox_messages_due,priority:1"`
	Attempts      int       `gorm:"not null"`
	LastError     string    `gorm:"type:text"`
	NextAttemptAt time.Time `gorm:"not null;index:idx_outbox_messages_due,priority:2"`
	CreatedAt     time.Time `gorm:"not null"`
	ProcessedAt   *time.Time
}

func (MessageDTO) TableName() string {
	return TableName
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:            m.ID().Raw(),
		OrderID:       m.OrderID().Int64(),
		Kind:          m.Kind().String(),
		Payload:       string(m.Payload()),
		Status:        m.Status().String(),
		Attempts:      m.Attempts(),
		LastError:     m.LastError(),
		NextAttemptAt: m.NextAttemptAt(),
		CreatedAt:     m.CreatedAt(),
		ProcessedAt:   m.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromRaw(dto.ID)
	if err != nil {
		return nil, err
	}

	kind, err := outbox.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := outbox.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		kernel.ID(dto.OrderID),
		kind,
		[]byte(dto.Payload),
		status,
		dto.Attempts,
		dto.LastError,
		dto.NextAttemptAt,
		dto.CreatedAt,
		dto.ProcessedAt,
	)
}
