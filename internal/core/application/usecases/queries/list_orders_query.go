package queries

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPage  = 0
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps page × MaxLimit within int.
	MaxPage = math.MaxInt / MaxLimit
)

// ErrListOrdersQueryIsNotConstructed is returned when a zero-value ListOrdersQuery reaches the handler.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery asks for one page of orders, optionally filtered by user and status.
type ListOrdersQuery struct {
	page   int
	limit  int
	userID *kernel.ID
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses raw query-string values and never fails:
//   - page falls back to 0 when missing, non-numeric or negative, and is capped at MaxPage
//   - limit falls back to 10 when missing, non-numeric or below 1, and is capped at 100
//   - an unparsable userId or unknown status drops that filter
//
// Example:
//
//	q := NewListOrdersQuery("abc", "-5", "", "")
//	// q.Page() == 0, q.Limit() == 10
func NewListOrdersQuery(rawPage, rawLimit, rawUserID, rawStatus string) ListOrdersQuery {
	q := ListOrdersQuery{
		page:  min(parseIntOr(rawPage, DefaultPage, 0), MaxPage),
		limit: min(parseIntOr(rawLimit, DefaultLimit, 1), MaxLimit),
		guard: guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(rawUserID) != "" {
		if userID, err := kernel.ParseID("userId", rawUserID); err == nil {
			q.userID = &userID
		}
	}

	if strings.TrimSpace(rawStatus) != "" {
		if status, err := order.ParseStatus(rawStatus); err == nil {
			q.status = &status
		}
	}

	return q
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the zero-based page index.
func (q ListOrdersQuery) Page() int { return q.page }

// Limit returns the page size, between 1 and MaxLimit.
func (q ListOrdersQuery) Limit() int { return q.limit }

// UserID is nil when listing is not restricted to one user.
func (q ListOrdersQuery) UserID() *kernel.ID { return q.userID }

// Status is nil when listing is not restricted to one status.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

func parseIntOr(raw string, fallback, lowest int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < lowest {
		return fallback
	}
	return v
}

// ListOrdersResult is one page of orders with paging metadata.
type ListOrdersResult struct {
	Items      []*order.Order
	TotalCount int64
	TotalPages int
	Page       int
	Limit      int
}
