package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when a zero-value GetOrderQuery reaches the handler.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads a single order with its items.
type GetOrderQuery struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with orderID.
// Returns an error if orderID is not a positive id.
func NewGetOrderQuery(orderID kernel.ID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order id.
func (q GetOrderQuery) OrderID() kernel.ID { return q.orderID }
