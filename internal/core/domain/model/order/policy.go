package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// TransitionPolicy decides whether an order may move from one status to another.
type TransitionPolicy interface {
	CheckTransition(from, to Status) error
}

// PermissiveTransitions allows any valid status to follow any other, including
// leaving DELIVERED or CANCELLED. This is the default.
type PermissiveTransitions struct{}

// CheckTransition only requires the target status to be valid.
func (PermissiveTransitions) CheckTransition(_, to Status) error {
	return to.Validate()
}

// StrictTransitions enforces the forward-only lifecycle drawn on Status.
// Re-applying the current status is always allowed.
type StrictTransitions struct {
	allowed map[Status][]Status
}

// NewStrictTransitions builds the forward-only transition table.
//
// Example:
//
//	policy := order.NewStrictTransitions()
//	err := policy.CheckTransition(order.Delivered, order.Pending) // ValueIsInvalidError
func NewStrictTransitions() StrictTransitions {
	return StrictTransitions{
		allowed: map[Status][]Status{
			Created:    {Pending, Processing, Cancelled},
			Pending:    {Processing, Cancelled},
			Processing: {Shipped, Cancelled},
			Shipped:    {Delivered},
			Delivered:  {},
			Cancelled:  {},
		},
	}
}

// CheckTransition returns ValueIsInvalidError for a move the table does not list.
func (p StrictTransitions) CheckTransition(from, to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	for _, next := range p.allowed[from] {
		if next == to {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("transition %s -> %s is not allowed", from, to))
}

// TotalPolicy decides whether an order's declared totalAmount is acceptable
// given its items.
type TotalPolicy interface {
	CheckTotal(o *Order) error
}

// DeclaredTotal accepts totalAmount as the caller declared it; tax, shipping or
// discounts may be folded in. This is the default.
type DeclaredTotal struct{}

// CheckTotal accepts every order.
func (DeclaredTotal) CheckTotal(*Order) error {
	return nil
}

// ReconciledTotal rejects orders whose totalAmount differs from the sum of item totals.
type ReconciledTotal struct{}

// CheckTotal returns ValueIsInvalidError when totalAmount differs from ItemsTotal.
func (ReconciledTotal) CheckTotal(o *Order) error {
	itemsTotal := o.ItemsTotal()
	if !o.TotalAmount().Equal(itemsTotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("%s does not match items total %s", o.TotalAmount(), itemsTotal),
		)
	}
	return nil
}
