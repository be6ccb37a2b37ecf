package deliveryrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add inserts a new delivery and records its id. A second delivery for the same order
// fails with errs.ConflictError.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("delivery for order", aggregate.OrderID(), err)
		}
		return err
	}

	return aggregate.MarkPersisted(kernel.ID(dto.ID))
}

func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"active":        dto.Active,
			"pickup_time":   dto.PickupTime,
			"delivery_time": dto.DeliveryTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID())
	}

	return nil
}

func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "delivery", id, "id = ?")
}

// GetForUpdate locks the delivery row until the surrounding transaction ends.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(tx, "delivery", id, "id = ?")
}

func (r *GormDeliveryRepository) FindByOrder(ctx context.Context, orderID kernel.ID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "delivery for order", orderID, "order_id = ?")
}

// Find lists deliveries matching every non-zero field of filter, oldest first.
func (r *GormDeliveryRepository) Find(ctx context.Context, filter ports.DeliveryFilter) ([]*delivery.Delivery, error) {
	tx := r.db.WithContext(ctx).Model(&DeliveryDTO{})
	if filter.CourierID != 0 {
		tx = tx.Where("courier_id = ?", filter.CourierID.Int64())
	}
	if filter.OrderID != 0 {
		tx = tx.Where("order_id = ?", filter.OrderID.Int64())
	}
	if filter.Active != nil {
		tx = tx.Where("active = ?", *filter.Active)
	}

	var dtos []DeliveryDTO
	if err := tx.Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

func (r *GormDeliveryRepository) first(tx *gorm.DB, what string, id kernel.ID, query string) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	if err := tx.First(&dto, query, id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// isUniqueViolation recognizes both the translated GORM error and the raw driver error,
// depending on whether the connection was opened with TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
