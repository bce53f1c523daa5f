package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is the cause attached when an order would be left without items.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
)

// Order is the aggregate root of the fulfillment core. It owns its items
// exclusively; they are created, replaced and deleted together with it.
//
// Order follows these invariants:
//   - userId, totalAmount and shippingAddress are always present
//   - The item set is never empty
//   - status and paymentStatus hold valid enum values
//   - actualDeliveryTime is only ever set by ChangeStatus(Delivered)
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id                    kernel.ID
	userID                kernel.ID
	totalAmount           kernel.Money
	status                Status
	paymentMethod         PaymentMethod
	paymentStatus         PaymentStatus
	shippingAddress       string
	deliveryNotes         *string
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
	driverID              *kernel.ID
	items                 []*Item
	createdAt             time.Time
	updatedAt             time.Time

	isConstructed bool
}

// Details carries the optional fields accepted at creation time.
// Zero values select the defaults: CREDIT_CARD and PENDING payment.
type Details struct {
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	DeliveryNotes         *string
	EstimatedDeliveryTime *time.Time
	DriverID              *kernel.ID
}

// NewOrder creates an unsaved order in CREATED status with its full initial item set.
//
// Example:
//
//	widget, _ := order.NewItem(1, "Widget", 3, kernel.MustMoney("10.00"), nil)
//	gadget, _ := order.NewItem(2, "Gadget", 1, kernel.MustMoney("15.50"), nil)
//	o, err := order.NewOrder(7, kernel.MustMoney("45.50"), "1 Main St",
//	    []*order.Item{widget, gadget}, order.Details{})
func NewOrder(
	userID kernel.ID,
	totalAmount kernel.Money,
	shippingAddress string,
	items []*Item,
	details Details,
) (*Order, error) {
	o := &Order{
		totalAmount:           totalAmount,
		status:                Created,
		paymentMethod:         CreditCard,
		paymentStatus:         PaymentPending,
		deliveryNotes:         details.DeliveryNotes,
		estimatedDeliveryTime: details.EstimatedDeliveryTime,
		isConstructed:         true,
	}
	if details.PaymentMethod != "" {
		o.paymentMethod = details.PaymentMethod
	}
	if details.PaymentStatus != "" {
		o.paymentStatus = details.PaymentStatus
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setShippingAddress(shippingAddress),
		o.paymentMethod.Validate(),
		o.paymentStatus.Validate(),
		o.setDriverID(details.DriverID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the persisted form of an order's scalar fields, used by RestoreOrder.
type State struct {
	ID                    kernel.ID
	UserID                kernel.ID
	TotalAmount           kernel.Money
	Status                Status
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	ShippingAddress       string
	DeliveryNotes         *string
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	DriverID              *kernel.ID
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RestoreOrder rebuilds an order read from storage.
func RestoreOrder(state State, items []*Item) (*Order, error) {
	o, err := NewOrder(state.UserID, state.TotalAmount, state.ShippingAddress, items, Details{
		PaymentMethod:         state.PaymentMethod,
		PaymentStatus:         state.PaymentStatus,
		DeliveryNotes:         state.DeliveryNotes,
		EstimatedDeliveryTime: state.EstimatedDeliveryTime,
		DriverID:              state.DriverID,
	})
	if err != nil {
		return nil, fmt.Errorf("restore order %s: %w", state.ID, err)
	}

	if err = errors.Join(state.ID.Validate(), state.Status.Validate()); err != nil {
		return nil, fmt.Errorf("restore order %s: %w", state.ID, err)
	}

	o.id = state.ID
	o.status = state.Status
	o.actualDeliveryTime = state.ActualDeliveryTime
	o.createdAt = state.CreatedAt
	o.updatedAt = state.UpdatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID is zero until the order has been stored.
func (o *Order) ID() kernel.ID { return o.id }

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.ID { return o.userID }

// TotalAmount returns the amount the caller declared for the whole order.
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

// Status returns the current delivery status.
func (o *Order) Status() Status { return o.status }

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the caller-maintained payment label.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// ShippingAddress returns the free-form delivery address.
func (o *Order) ShippingAddress() string { return o.shippingAddress }

// DeliveryNotes returns nil when no notes were given.
func (o *Order) DeliveryNotes() *string { return o.deliveryNotes }

// EstimatedDeliveryTime returns nil when no estimate is known.
func (o *Order) EstimatedDeliveryTime() *time.Time { return o.estimatedDeliveryTime }

// ActualDeliveryTime returns the moment the order last became DELIVERED.
// Returns nil if it never has.
func (o *Order) ActualDeliveryTime() *time.Time { return o.actualDeliveryTime }

// DriverID returns the assigned driver reference.
// Returns nil if no driver is assigned.
func (o *Order) DriverID() *kernel.ID { return o.driverID }

// CreatedAt returns when the order was first stored.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the item list; the items themselves are immutable.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// ItemsTotal sums the stored totalPrice of every item.
func (o *Order) ItemsTotal() kernel.Money {
	totals := make([]kernel.Money, 0, len(o.items))
	for _, item := range o.items {
		totals = append(totals, item.TotalPrice())
	}
	return kernel.Sum(totals...)
}

// ChangeStatus moves the order to status `to` if policy allows it. Requesting
// DELIVERED stamps actualDeliveryTime with now; other statuses leave it untouched.
func (o *Order) ChangeStatus(to Status, policy TransitionPolicy, now time.Time) error {
	if err := policy.CheckTransition(o.status, to); err != nil {
		return err
	}

	o.status = to
	if to == Delivered {
		delivered := now.UTC()
		o.actualDeliveryTime = &delivered
	}
	return nil
}

// Patch lists the fields an update may change. Nil fields are left as they are;
// an empty Items slice keeps the current item set.
type Patch struct {
	UserID                *kernel.ID
	TotalAmount           *kernel.Money
	Status                *Status
	PaymentMethod         *PaymentMethod
	PaymentStatus         *PaymentStatus
	ShippingAddress       *string
	DeliveryNotes         *string
	EstimatedDeliveryTime *time.Time
	DriverID              *kernel.ID
	Items                 []*Item
}

// ReplacesItems reports whether applying p swaps the whole item set.
func (p Patch) ReplacesItems() bool {
	return len(p.Items) > 0
}

// Revise applies p. A status in p goes through ChangeStatus with the same policy.
// On error the order is left unchanged.
func (o *Order) Revise(p Patch, policy TransitionPolicy, now time.Time) error {
	revised := *o

	var err error
	if p.UserID != nil {
		err = errors.Join(err, revised.setUserID(*p.UserID))
	}
	if p.TotalAmount != nil {
		revised.totalAmount = *p.TotalAmount
	}
	if p.PaymentMethod != nil {
		err = errors.Join(err, p.PaymentMethod.Validate())
		revised.paymentMethod = *p.PaymentMethod
	}
	if p.PaymentStatus != nil {
		err = errors.Join(err, p.PaymentStatus.Validate())
		revised.paymentStatus = *p.PaymentStatus
	}
	if p.ShippingAddress != nil {
		err = errors.Join(err, revised.setShippingAddress(*p.ShippingAddress))
	}
	if p.DeliveryNotes != nil {
		revised.deliveryNotes = p.DeliveryNotes
	}
	if p.EstimatedDeliveryTime != nil {
		revised.estimatedDeliveryTime = p.EstimatedDeliveryTime
	}
	if p.DriverID != nil {
		err = errors.Join(err, revised.setDriverID(p.DriverID))
	}
	if p.ReplacesItems() {
		err = errors.Join(err, revised.setItems(p.Items))
	}
	if p.Status != nil {
		err = errors.Join(err, revised.ChangeStatus(*p.Status, policy, now))
	}
	if err != nil {
		return err
	}

	*o = revised
	return nil
}

func (o *Order) setUserID(userID kernel.ID) error {
	if userID.IsZero() {
		return errs.NewValueIsRequiredError("userId")
	}
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setShippingAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("shippingAddress")
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setDriverID(driverID *kernel.ID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	o.driverID = driverID
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", ErrOrderHasNoItems)
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", idx, err)
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}
