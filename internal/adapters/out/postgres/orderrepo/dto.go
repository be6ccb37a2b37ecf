// Package orderrepo persists order aggregates and their item references with GORM.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderDTO is the row of the orders table. Orders are soft-deleted through DeletedAt.
type OrderDTO struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID   int64           `gorm:"not null;index"`
	RestaurantID int64           `gorm:"not null;index"`
	Status       string          `gorm:"type:varchar(32);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Address      *string         `gorm:"type:varchar(255)"`
	CreatedAt    time.Time       `gorm:"not null"`
	DeletedAt    gorm.DeletedAt  `gorm:"index"`
	Items        []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO links an order to one catalog item. Duplicated item ids are separate rows.
type OrderItemDTO struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	OrderID int64 `gorm:"not null;index"`
	ItemID  int64 `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	itemIDs := o.ItemIDs()
	items := make([]OrderItemDTO, 0, len(itemIDs))
	for _, id := range itemIDs {
		items = append(items, OrderItemDTO{OrderID: o.ID().Int64(), ItemID: id.Int64()})
	}

	return OrderDTO{
		ID:           o.ID().Int64(),
		CustomerID:   o.CustomerID().Int64(),
		RestaurantID: o.RestaurantID().Int64(),
		Status:       o.Status().String(),
		TotalPrice:   o.TotalPrice().Decimal(),
		Address:      o.Address().Ptr(),
		CreatedAt:    o.CreatedAt(),
		Items:        items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
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

	itemIDs := make([]kernel.ID, 0, len(dto.Items))
	for _, item := range dto.Items {
		itemIDs = append(itemIDs, kernel.ID(item.ItemID))
	}

	var deletedAt *time.Time
	if dto.DeletedAt.Valid {
		t := dto.DeletedAt.Time
		deletedAt = &t
	}

	return order.RestoreOrder(
		kernel.ID(dto.ID),
		kernel.ID(dto.CustomerID),
		kernel.ID(dto.RestaurantID),
		status,
		price,
		itemIDs,
		address,
		dto.CreatedAt,
		deletedAt,
	)
}
