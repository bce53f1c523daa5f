// Package guard holds ConstructorGuard, a marker that lets commands and queries
// detect whether they were built through their constructor or are zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value types whose constructor performs validation.
// The zero value reports "not constructed".
//
// Example:
//
//	type GetOrderQuery struct {
//	    orderID kernel.ID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (q GetOrderQuery) Validate() error {
//	    return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard, otherwise validationError
// (or ErrDefaultConstructorGuard when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
