package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrUpdateOrderCommandIsNotConstructed is returned when a zero-value UpdateOrderCommand reaches the handler.
var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderChanges lists the fields a caller wants to change. Nil fields and a nil
// or empty Items slice are left as stored.
type OrderChanges struct {
	UserID                *kernel.ID
	TotalAmount           *kernel.Money
	Status                *order.Status
	PaymentMethod         *order.PaymentMethod
	PaymentStatus         *order.PaymentStatus
	ShippingAddress       *string
	DeliveryNotes         *string
	EstimatedDeliveryTime *time.Time
	DriverID              *kernel.ID
	Items                 []ItemSpec
}

// UpdateOrderCommand represents a partial update of an order, optionally
// replacing its whole item set.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the changes and prices any replacement items.
//
// Example:
//
//	address := "2 Side St"
//	cmd, err := NewUpdateOrderCommand(42, OrderChanges{ShippingAddress: &address})
func NewUpdateOrderCommand(orderID kernel.ID, changes OrderChanges) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{guard: guard.NewConstructorGuard()}

	items, itemsErr := buildItems(changes.Items)
	if err := errors.Join(
		cmd.setOrderID(orderID),
		validateChanges(changes),
		itemsErr,
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd.patch = order.Patch{
		UserID:                changes.UserID,
		TotalAmount:           changes.TotalAmount,
		Status:                changes.Status,
		PaymentMethod:         changes.PaymentMethod,
		PaymentStatus:         changes.PaymentStatus,
		ShippingAddress:       changes.ShippingAddress,
		DeliveryNotes:         changes.DeliveryNotes,
		EstimatedDeliveryTime: changes.EstimatedDeliveryTime,
		DriverID:              changes.DriverID,
		Items:                 items,
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderCommand) OrderID() kernel.ID { return c.orderID }

// Patch returns the scalar changes; nil fields are left untouched.
func (c UpdateOrderCommand) Patch() order.Patch { return c.patch }

func (c *UpdateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func validateChanges(changes OrderChanges) error {
	var err error
	if changes.UserID != nil {
		err = errors.Join(err, changes.UserID.Validate())
	}
	if changes.Status != nil {
		err = errors.Join(err, changes.Status.Validate())
	}
	if changes.PaymentMethod != nil {
		err = errors.Join(err, changes.PaymentMethod.Validate())
	}
	if changes.PaymentStatus != nil {
		err = errors.Join(err, changes.PaymentStatus.Validate())
	}
	if changes.ShippingAddress != nil && strings.TrimSpace(*changes.ShippingAddress) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("shippingAddress"))
	}
	if changes.DriverID != nil {
		err = errors.Join(err, changes.DriverID.Validate())
	}
	return err
}
