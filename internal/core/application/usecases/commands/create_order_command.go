package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a zero-value CreateOrderCommand reaches the handler.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemSpec describes one requested line item. Product data comes from the
// caller, who is expected to have read it from the catalog.
type ItemSpec struct {
	ProductID   kernel.ID
	ProductName string
	Quantity    int
	UnitPrice   kernel.Money
	Notes       *string
}

// CreateOrderCommand represents a request to place a new order with its items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(7, kernel.MustMoney("45.50"), "1 Main St", []ItemSpec{
//	    {ProductID: 1, ProductName: "Widget", Quantity: 3, UnitPrice: kernel.MustMoney("10.00")},
//	    {ProductID: 2, ProductName: "Gadget", Quantity: 1, UnitPrice: kernel.MustMoney("15.50")},
//	}, order.Details{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.ID
	totalAmount     kernel.Money
	shippingAddress string
	items           []*order.Item
	details         order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and prices the items. Nothing
// touches storage until the handler runs, so a rejected command never opens
// a transaction.
func NewCreateOrderCommand(
	userID kernel.ID,
	totalAmount kernel.Money,
	shippingAddress string,
	items []ItemSpec,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		totalAmount: totalAmount,
		details:     details,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setShippingAddress(shippingAddress),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the customer placing the order.
func (c CreateOrderCommand) UserID() kernel.ID { return c.userID }

// TotalAmount returns the declared order total.
func (c CreateOrderCommand) TotalAmount() kernel.Money { return c.totalAmount }

// ShippingAddress returns the delivery address.
func (c CreateOrderCommand) ShippingAddress() string { return c.shippingAddress }

// Items returns the priced, unsaved items.
func (c CreateOrderCommand) Items() []*order.Item { return c.items }

// Details returns the optional order fields.
func (c CreateOrderCommand) Details() order.Details { return c.details }

func (c *CreateOrderCommand) setUserID(userID kernel.ID) error {
	if userID.IsZero() {
		return errs.NewValueIsRequiredError("userId")
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("shippingAddress")
	}
	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setItems(specs []ItemSpec) error {
	items, err := buildItems(specs)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", order.ErrOrderHasNoItems)
	}
	c.items = items
	return nil
}

// buildItems prices every spec and reports all invalid items at once.
func buildItems(specs []ItemSpec) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(specs))
	var joined error
	for idx, spec := range specs {
		item, err := order.NewItem(spec.ProductID, spec.ProductName, spec.Quantity, spec.UnitPrice, spec.Notes)
		if err != nil {
			joined = errors.Join(joined, fmt.Errorf("items[%d]: %w", idx, err))
			continue
		}
		items = append(items, item)
	}
	if joined != nil {
		return nil, joined
	}
	return items, nil
}
