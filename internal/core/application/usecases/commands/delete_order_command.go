package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrDeleteOrderCommandIsNotConstructed is returned when a zero-value DeleteOrderCommand reaches the handler.
var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order together with its items.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to delete the order with orderID.
// Returns an error if orderID is not a positive id.
//
// Example:
//
//	cmd, err := NewDeleteOrderCommand(42)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
func NewDeleteOrderCommand(orderID kernel.ID) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to delete.
func (c DeleteOrderCommand) OrderID() kernel.ID { return c.orderID }
