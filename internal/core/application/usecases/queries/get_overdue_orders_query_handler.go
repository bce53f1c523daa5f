package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler reads overdue orders straight from the orders table.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue order queries.
// Requires a GORM database connection for query execution.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle returns overdue orders, the most overdue first. Database failures
// come back as errs.StorageError.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOverdueOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			estimated_delivery_time,
			driver_id
		FROM orders
		WHERE estimated_delivery_time < ?
		  AND status NOT IN (?, ?)
		ORDER BY estimated_delivery_time, id
	`, query.Now(), order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, errs.NewStorageErrorWithCause("select overdue orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, userID int64
			status     string
			eta        time.Time
			driverID   sql.NullInt64
		)

		if err = rows.Scan(&id, &userID, &status, &eta, &driverID); err != nil {
			return nil, errs.NewStorageErrorWithCause("scan overdue order", err)
		}

		resp := GetOverdueOrdersQueryResponse{
			ID:                    kernel.ID(id),
			UserID:                kernel.ID(userID),
			Status:                order.Status(status),
			EstimatedDeliveryTime: eta,
		}
		if driverID.Valid {
			driver := kernel.ID(driverID.Int64)
			resp.DriverID = &driver
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageErrorWithCause("read overdue orders", err)
	}

	return orders, nil
}
