package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderCommandHandler applies a partial update. The scalar update and the
// item replacement share one transaction: either both land or neither does.
type UpdateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	transitions order.TransitionPolicy
	totals      order.TotalPolicy
	notifier    notifier
}

// NewUpdateOrderCommandHandler creates a handler for partial order updates.
// transitions guards status changes and totals guards the resulting total.
//
// Example:
//
//	handler := NewUpdateOrderCommandHandler(factory, publisher, order.NewStrictTransitions(), order.ReconciledTotal{}, logger)
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	transitions order.TransitionPolicy,
	totals order.TotalPolicy,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		totals:      totals,
		notifier:    newNotifier(publisher, logger),
	}
}

// Handle returns the order as read back after commit.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (_ *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "UpdateOrder")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	if err = h.apply(ctx, cmd); err != nil {
		return nil, err
	}

	updated, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, ports.OrderUpdated, updated.ID(), updated.UserID(), updated.Status().String())
	return updated, nil
}

func (h *UpdateOrderCommandHandler) apply(ctx context.Context, cmd UpdateOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	patch := cmd.Patch()
	if err = aggregate.Revise(patch, h.transitions, time.Now()); err != nil {
		return err
	}

	if err = h.totals.CheckTotal(aggregate); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if patch.ReplacesItems() {
		if err = orderRepo.ReplaceItems(ctx, aggregate.ID(), aggregate.Items()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
