package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler persists a new order and its items in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, order.DeclaredTotal{}, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.ID() is assigned, created.Status() == order.Created
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	totals     order.TotalPolicy
	notifier   notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	totals order.TotalPolicy,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		totals:     totals,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle inserts the order row, then its items, reads the stored aggregate back
// and commits. Any failure rolls the whole write back.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "CreateOrder")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	draft, err := order.NewOrder(cmd.UserID(), cmd.TotalAmount(), cmd.ShippingAddress(), cmd.Items(), cmd.Details())
	if err != nil {
		return nil, err
	}

	if err = h.totals.CheckTotal(draft); err != nil {
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
	id, err := orderRepo.Add(ctx, draft)
	if err != nil {
		return nil, err
	}

	created, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, ports.OrderCreated, created.ID(), created.UserID(), created.Status().String())
	return created, nil
}
