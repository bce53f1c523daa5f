package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order and its items in one transaction.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
// Requires an OrderUoWFactory for the transaction and a publisher for the
// order_deleted event sent after commit.
func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	ctx, span := tracer.Start(ctx, "DeleteOrder")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.notify(ctx, ports.OrderDeleted, cmd.OrderID(), 0, "")
	return nil
}
