package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// ListOrdersQueryHandler pages through orders, newest first.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(repo)
//	result, err := handler.Handle(ctx, NewListOrdersQuery(c.QueryParam("page"), c.QueryParam("limit"), "", ""))
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler creates a handler reading through repo.
func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

// Handle fetches one page and computes the page count as ceil(total / limit).
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResult, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResult{}, err
	}

	filter := ports.OrderFilter{UserID: query.UserID(), Status: query.Status()}
	orders, total, err := h.repo.FindPage(ctx, filter, query.Page(), query.Limit())
	if err != nil {
		return ListOrdersResult{}, err
	}

	return ListOrdersResult{
		Items:      orders,
		TotalCount: total,
		TotalPages: totalPages(total, query.Limit()),
		Page:       query.Page(),
		Limit:      query.Limit(),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
