package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ID identifies a persisted entity or an external reference (user, product, driver).
// Identifiers are assigned by the storage engine and are always positive; the zero
// value means "not assigned yet".
type ID int64

// NewID validates raw and returns it as an ID.
//
// Example:
//
//	userID, err := kernel.NewID(7)
//	if err != nil {
//	    return err // errs.ValueIsOutOfRangeError
//	}
func NewID(paramName string, raw int64) (ID, error) {
	id := ID(raw)
	if err := id.validate(paramName); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses the decimal string representation of an ID, as it arrives
// in path segments or query strings.
func ParseID(paramName, s string) (ID, error) {
	raw, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not an integer", s))
	}
	return NewID(paramName, raw)
}

// Validate returns an error when the ID has not been assigned.
func (id ID) Validate() error {
	return id.validate("id")
}

// IsZero reports whether the ID has not been assigned yet.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the raw value for persistence.
func (id ID) Int64() int64 {
	return int64(id)
}

// String returns the decimal form of the id.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id ID) validate(paramName string) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError(paramName, int64(id), 1, "max int64")
	}
	return nil
}
