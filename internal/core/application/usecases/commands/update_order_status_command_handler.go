package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a status change under the configured
// transition policy. Moving to DELIVERED stamps the actual delivery time; callers
// can never supply it.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	transitions order.TransitionPolicy
	notifier    notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
// Requires an OrderUoWFactory for the transaction and a TransitionPolicy that
// decides which moves are allowed.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	transitions order.TransitionPolicy,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		notifier:    newNotifier(publisher, logger),
	}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (_ *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "UpdateOrderStatus")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), h.transitions, time.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, ports.OrderStatusChanged, updated.ID(), updated.UserID(), updated.Status().String())
	return updated, nil
}
