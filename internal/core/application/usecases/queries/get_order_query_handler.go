package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// GetOrderQueryHandler reads one order through the repository.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler reading through repo.
func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.Get(ctx, query.OrderID())
}
