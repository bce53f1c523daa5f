// Package ports defines the contracts between the order domain and infrastructure:
// persistence, transactions, event publishing and identity.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderFilter narrows FindPage. Nil fields do not filter.
type OrderFilter struct {
	UserID *kernel.ID
	Status *order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// Every method runs within the transaction of the unit of work that produced it.
// Storage failures are reported as errs.StorageError.
type OrderRepository interface {
	// Add inserts the order row and then one row per item, and returns the
	// identifier assigned to the order.
	Add(ctx context.Context, aggregate *order.Order) (kernel.ID, error)

	// Update writes every scalar column of an existing order, nullable ones included.
	// Returns errs.ObjectNotFoundError when no row matched.
	Update(ctx context.Context, aggregate *order.Order) error

	// ReplaceItems deletes all item rows of the order and inserts items in their place.
	ReplaceItems(ctx context.Context, orderID kernel.ID, items []*order.Item) error

	// Get loads an order with its items in insertion order.
	// Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// FindPage returns one page of orders matching filter, newest first,
	// together with the size of the whole filtered set.
	//
	// Example:
	//   orders, total, err := repo.FindPage(ctx, ports.OrderFilter{UserID: &userID}, 0, 10)
	FindPage(ctx context.Context, filter OrderFilter, page, limit int) ([]*order.Order, int64, error)

	// Delete removes the order's items and then the order itself.
	// Returns errs.ObjectNotFoundError when the order did not exist.
	Delete(ctx context.Context, id kernel.ID) error
}
