package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType names what happened to an order.
type EventType string

const (
	OrderCreated       EventType = "order_created"
	OrderUpdated       EventType = "order_updated"
	OrderStatusChanged EventType = "order_status_changed"
	OrderDeleted       EventType = "order_deleted"
)

// OrderChangedEvent is emitted after a write has been committed.
// Status is empty for OrderDeleted.
type OrderChangedEvent struct {
	ID         string
	Type       EventType
	OrderID    kernel.ID
	UserID     kernel.ID
	Status     string
	OccurredAt time.Time
}

// EventPublisher delivers order events to downstream consumers. Publishing
// happens after commit, so a failure never undoes the write.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderChangedEvent) error
}
