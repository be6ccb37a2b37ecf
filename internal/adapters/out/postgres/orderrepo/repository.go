package orderrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and all its item rows, then records the generated id on the
// aggregate. Items are inserted in one batch statement.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.ID() != 0 {
		return order.ErrOrderAlreadyPersisted
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.MarkPersisted(kernel.ID(dto.ID))
}

// Update writes status and total price. Item rows are never touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Int64()).
		Updates(map[string]any{
			"status":      aggregate.Status().String(),
			"total_price": aggregate.TotalPrice().Decimal(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row until the surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) GetUnscoped(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx).Unscoped(), id)
}

func (r *GormOrderRepository) ListByRestaurant(ctx context.Context, restaurantID kernel.ID) ([]*order.Order, error) {
	return r.list(ctx, "restaurant_id = ?", restaurantID.Int64())
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.ID) ([]*order.Order, error) {
	return r.list(ctx, "customer_id = ?", customerID.Int64())
}

// Delete marks the order as deleted. Items stay in place for audit reads.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}

	return nil
}

func (r *GormOrderRepository) first(tx *gorm.DB, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := tx.Preload("Items", orderedItems).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) list(ctx context.Context, query string, arg int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where(query, arg).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// orderedItems keeps item references in insertion order.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
