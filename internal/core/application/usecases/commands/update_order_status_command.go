package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned when a zero-value UpdateOrderStatusCommand reaches the handler.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order to a new delivery status.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses rawStatus case-insensitively. A missing or
// unknown status is a validation error.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(42, "delivered")
func NewUpdateOrderStatusCommand(orderID kernel.ID, rawStatus string) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{guard: guard.NewConstructorGuard()}

	status, statusErr := order.ParseStatus(rawStatus)
	if err := errors.Join(cmd.setOrderID(orderID), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order whose status changes.
func (c UpdateOrderStatusCommand) OrderID() kernel.ID { return c.orderID }

// Status returns the requested status.
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
