package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrGetOverdueOrdersQueryIsNotConstructed is returned when a zero-value GetOverdueOrdersQuery reaches the handler.
var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery finds open orders whose estimated delivery time has passed.
// Orders without an estimate are never overdue.
type GetOverdueOrdersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for orders overdue at now.
//
// Example:
//
//	result, err := handler.Handle(ctx, NewGetOverdueOrdersQuery(time.Now()))
func NewGetOverdueOrdersQuery(now time.Time) GetOverdueOrdersQuery {
	return GetOverdueOrdersQuery{now: now.UTC(), guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// Now returns the reference time in UTC.
func (q GetOverdueOrdersQuery) Now() time.Time { return q.now }

// GetOverdueOrdersQueryResponse is a flat view of one overdue order.
type GetOverdueOrdersQueryResponse struct {
	ID                    kernel.ID
	UserID                kernel.ID
	Status                order.Status
	EstimatedDeliveryTime time.Time
	DriverID              *kernel.ID
}
