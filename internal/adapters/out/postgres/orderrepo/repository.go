package orderrepo

import (
	"context"
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updatableColumns are written on every Update so that cleared nullable
// fields reach the database as NULL.
var updatableColumns = []string{
	"user_id",
	"total_amount",
	"status",
	"payment_method",
	"payment_status",
	"shipping_address",
	"delivery_notes",
	"estimated_delivery_time",
	"actual_delivery_time",
	"driver_id",
	"updated_at",
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its items. The order row goes first so the
// items can reference it.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (kernel.ID, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.ID = 0
	dto.Items = nil

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return 0, errs.NewStorageErrorWithCause("insert order", err)
	}

	orderID := kernel.ID(dto.ID)
	if err := r.insertItems(ctx, orderID, items); err != nil {
		return 0, err
	}

	return orderID, nil
}

// Update saves the scalar columns of an existing order. Items are left alone;
// see ReplaceItems.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Items = nil
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(updatableColumns).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewStorageErrorWithCause("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	return nil
}

// ReplaceItems swaps the whole item set of an order. An order never ends up
// without items, so an empty set is refused before anything is deleted.
func (r *GormOrderRepository) ReplaceItems(ctx context.Context, orderID kernel.ID, items []*order.Item) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", order.ErrOrderHasNoItems)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Int64()).Delete(&OrderItemDTO{}).Error; err != nil {
		return errs.NewStorageErrorWithCause("delete order items", err)
	}

	dtos := itemsFromDomain(orderID, items)
	for i := range dtos {
		dtos[i].ID = 0
	}
	return r.insertItems(ctx, orderID, dtos)
}

// Get retrieves an order by ID with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.Int64())
		}
		return nil, errs.NewStorageErrorWithCause("select order", err)
	}

	return toDomain(dto)
}

// FindPage retrieves one page of orders, newest first.
func (r *GormOrderRepository) FindPage(
	ctx context.Context,
	filter ports.OrderFilter,
	page, limit int,
) ([]*order.Order, int64, error) {
	if limit < 1 {
		return nil, 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, math.MaxInt)
	}
	if page < 0 || page > math.MaxInt/limit {
		return nil, 0, errs.NewValueIsOutOfRangeError("page", page, 0, math.MaxInt/limit)
	}
	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&OrderDTO{})
		if filter.UserID != nil {
			query = query.Where("user_id = ?", filter.UserID.Int64())
		}
		if filter.Status != nil {
			query = query.Where("status = ?", filter.Status.String())
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, errs.NewStorageErrorWithCause("count orders", err)
	}

	var dtos []OrderDTO
	err := filtered().
		Preload("Items", orderItemsByID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, errs.NewStorageErrorWithCause("select orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

// Delete removes an order. Items go first, then the order row.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id.Int64()).Delete(&OrderItemDTO{}).Error; err != nil {
		return errs.NewStorageErrorWithCause("delete order items", err)
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, id.Int64())
	if result.Error != nil {
		return errs.NewStorageErrorWithCause("delete order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.Int64())
	}

	return nil
}

func (r *GormOrderRepository) insertItems(ctx context.Context, orderID kernel.ID, items []OrderItemDTO) error {
	if len(items) == 0 {
		return nil
	}

	for i := range items {
		items[i].OrderID = orderID.Int64()
	}

	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return errs.NewStorageErrorWithCause("insert order items", err)
	}
	return nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}
