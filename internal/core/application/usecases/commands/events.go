package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("fulfillment/commands")

// notifier publishes events for committed writes. A publishing failure is
// logged and never reported to the caller: the write has already happened.
type notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher ports.EventPublisher, logger *slog.Logger) notifier {
	return notifier{
		publisher: publisher,
		logger:    logger.With("component", "order-events"),
	}
}

func (n notifier) notify(ctx context.Context, eventType ports.EventType, orderID, userID kernel.ID, status string) {
	event := ports.OrderChangedEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    orderID,
		UserID:     userID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.ErrorContext(ctx, "failed to publish order event",
			"event_type", string(eventType),
			"order_id", orderID.Int64(),
			"error", err,
		)
	}
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
