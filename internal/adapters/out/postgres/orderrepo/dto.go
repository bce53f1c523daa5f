// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// The order aggregate is stored in two tables: orders and order_items, the latter
// owned by the former through a cascading foreign key.
package orderrepo

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by user and status for the listing filters.
type OrderDTO struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement"`
	UserID                int64           `gorm:"not null;index"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status                string          `gorm:"type:varchar(20);not null;default:CREATED;index"`
	PaymentMethod         string          `gorm:"type:varchar(20);not null;default:CREDIT_CARD"`
	PaymentStatus         string          `gorm:"type:varchar(20);not null;default:PENDING"`
	ShippingAddress       string          `gorm:"type:text;not null"`
	DeliveryNotes         *string         `gorm:"type:text"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	DriverID              *int64
	Items                 []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line of an order.
type OrderItemDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"not null;index"`
	ProductID   int64           `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes       *string         `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation, items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *int64
	if id := aggregate.DriverID(); id != nil {
		raw := id.Int64()
		driverID = &raw
	}

	return OrderDTO{
		ID:                    aggregate.ID().Int64(),
		UserID:                aggregate.UserID().Int64(),
		TotalAmount:           aggregate.TotalAmount().Decimal(),
		Status:                aggregate.Status().String(),
		PaymentMethod:         string(aggregate.PaymentMethod()),
		PaymentStatus:         string(aggregate.PaymentStatus()),
		ShippingAddress:       aggregate.ShippingAddress(),
		DeliveryNotes:         aggregate.DeliveryNotes(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		DriverID:              driverID,
		Items:                 itemsFromDomain(aggregate.ID(), aggregate.Items()),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}
}

func itemsFromDomain(orderID kernel.ID, items []*order.Item) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, OrderItemDTO{
			ID:          item.ID().Int64(),
			OrderID:     orderID.Int64(),
			ProductID:   item.ProductID().Int64(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Decimal(),
			TotalPrice:  item.TotalPrice().Decimal(),
			Notes:       item.Notes(),
		})
	}
	return dtos
}

// toDomain converts a database DTO, with its items preloaded, to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, fmt.Errorf("restore order %d: %w", dto.ID, err)
		}
		items = append(items, item)
	}

	totalAmount, err := kernel.NewMoney("totalAmount", dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.ID
	if dto.DriverID != nil {
		id := kernel.ID(*dto.DriverID)
		driverID = &id
	}

	return order.RestoreOrder(order.State{
		ID:                    kernel.ID(dto.ID),
		UserID:                kernel.ID(dto.UserID),
		TotalAmount:           totalAmount,
		Status:                order.Status(dto.Status),
		PaymentMethod:         order.PaymentMethod(dto.PaymentMethod),
		PaymentStatus:         order.PaymentStatus(dto.PaymentStatus),
		ShippingAddress:       dto.ShippingAddress,
		DeliveryNotes:         dto.DeliveryNotes,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		ActualDeliveryTime:    dto.ActualDeliveryTime,
		DriverID:              driverID,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
	}, items)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	unitPrice, err := kernel.NewMoney("unitPrice", dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoney("totalPrice", dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		kernel.ID(dto.ID),
		kernel.ID(dto.ProductID),
		dto.ProductName,
		dto.Quantity,
		unitPrice,
		totalPrice,
		dto.Notes,
	)
}
