package order

import (
	"errors"
	"strings"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxProductNameLength is the longest product name, in characters, an item may carry.
const MaxProductNameLength = 255

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. Product data is denormalized from the catalog at
// write time, and totalPrice is computed once so historical orders stay stable
// when catalog prices change later.
type Item struct {
	id          kernel.ID
	productID   kernel.ID
	productName string
	quantity    int
	unitPrice   kernel.Money
	totalPrice  kernel.Money
	notes       *string

	guard guard.ConstructorGuard
}

// NewItem builds an unsaved line item and prices it.
//
// Example:
//
//	item, err := order.NewItem(1, "Widget", 3, kernel.MustMoney("10.00"), nil)
//	// item.TotalPrice() == 30.00
func NewItem(productID kernel.ID, productName string, quantity int, unitPrice kernel.Money, notes *string) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProductID(productID),
		item.setProductName(productName),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	totalPrice := unitPrice.Multiply(quantity)
	if totalPrice.GreaterThan(kernel.MaxMoney()) {
		return nil, errs.NewValueIsOutOfRangeError("totalPrice", totalPrice.String(), 0, kernel.MaxMoney().String())
	}

	item.unitPrice = unitPrice
	item.totalPrice = totalPrice
	item.notes = notes
	return item, nil
}

// RestoreItem rebuilds a persisted item. The stored totalPrice is kept as is.
func RestoreItem(
	id kernel.ID,
	productID kernel.ID,
	productName string,
	quantity int,
	unitPrice kernel.Money,
	totalPrice kernel.Money,
	notes *string,
) (*Item, error) {
	item, err := NewItem(productID, productName, quantity, unitPrice, notes)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}

	item.id = id
	item.totalPrice = totalPrice
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID is zero until the item has been stored.
func (i *Item) ID() kernel.ID { return i.id }
// ProductID returns the catalog product this line refers to.
func (i *Item) ProductID() kernel.ID { return i.productID }
// ProductName returns the product name copied at write time.
func (i *Item) ProductName() string { return i.productName }
// Quantity returns the number of units, always at least one.
func (i *Item) Quantity() int { return i.quantity }
// UnitPrice returns the price of one unit copied at write time.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
// TotalPrice returns quantity × unit price as computed when the item was created.
func (i *Item) TotalPrice() kernel.Money { return i.totalPrice }
// Notes returns nil when the line has no notes.
func (i *Item) Notes() *string { return i.notes }

func (i *Item) setProductID(productID kernel.ID) error {
	if productID.IsZero() {
		return errs.NewValueIsRequiredError("productId")
	}
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setProductName(productName string) error {
	if strings.TrimSpace(productName) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	if n := utf8.RuneCountInString(productName); n > MaxProductNameLength {
		return errs.NewValueIsOutOfRangeError("productName", n, 1, MaxProductNameLength)
	}
	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}
