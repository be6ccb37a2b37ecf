// Package deliveryrepo persists ledger deliveries with GORM. A unique index on order_id
// backs the one-delivery-per-order rule when two creates race past the existence check.
package deliveryrepo

import (
	"time"

	"foodorder/internal/core/domain/model/delivery"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DeliveryDTO is the row of the deliveries table. Active mirrors the status so that
// courier lookups can filter on an indexed column.
type DeliveryDTO struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	CourierID    int64  `gorm:"not null;index:idx_deliveries_courier_active,priority:1"`
	OrderID      int64  `gorm:"not null;uniqueIndex"`
	Status       string `gorm:"type:varchar(16);not null"`
	Active       bool   `gorm:"not null;index:idx_deliveries_courier_active,priority:2"`
	PickupTime   *time.Time
	DeliveryTime *time.Time
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Address      *string         `gorm:"type:varchar(255)"`
	CreatedAt    time.Time       `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:           d.ID().Int64(),
		CourierID:    d.CourierID().Int64(),
		OrderID:      d.OrderID().Int64(),
		Status:       d.Status().String(),
		Active:       d.IsActive(),
		PickupTime:   d.PickupTime(),
		DeliveryTime: d.DeliveryTime(),
		TotalPrice:   d.TotalPrice().Decimal(),
		Address:      d.Address().Ptr(),
		CreatedAt:    d.CreatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	var address kernel.Address
	if dto.Address != nil {
		if address, err = kernel.NewAddress(*dto.Address); err != nil {
			return nil, err
		}
	}

	return delivery.RestoreDelivery(
		kernel.ID(dto.ID),
		kernel.ID(dto.CourierID),
		kernel.ID(dto.OrderID),
		status,
		dto.PickupTime,
		dto.DeliveryTime,
		price,
		address,
		dto.CreatedAt,
	)
}
