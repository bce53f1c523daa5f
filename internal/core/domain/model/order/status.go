package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the delivery lifecycle state of an order.
//
//	CREATED ──> PENDING ──> PROCESSING ──> SHIPPED ──> DELIVERED
//	   │           │             │
//	   └───────────┴─────────────┴──────> CANCELLED
//
// The diagram is the strict table (see StrictTransitions). By default any state
// may move to any other state (see PermissiveTransitions).
type Status string

const (
	Created    Status = "CREATED"
	Pending    Status = "PENDING"
	Processing Status = "PROCESSING"
	Shipped    Status = "SHIPPED"
	Delivered  Status = "DELIVERED"
	Cancelled  Status = "CANCELLED"
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Created, Pending, Processing, Shipped, Delivered, Cancelled}
}

// ParseStatus converts wire input to a Status. Matching is case-insensitive.
// An empty value yields ValueIsRequiredError, an unknown one ValueIsInvalidError.
func ParseStatus(raw string) (Status, error) {
	return parseEnum("status", raw, Statuses())
}

// Validate checks that s is one of the declared statuses.
func (s Status) Validate() error {
	return validateEnum("status", s, Statuses())
}

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "CREDIT_CARD"
	PayPal     PaymentMethod = "PAYPAL"
	Cash       PaymentMethod = "CASH"
)

// PaymentMethods lists every accepted payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{CreditCard, PayPal, Cash}
}

// ParsePaymentMethod converts wire input to a PaymentMethod. Matching is case-insensitive.
//
// Example:
//
//	method, err := order.ParsePaymentMethod("paypal")
//	// method == order.PayPal
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	return parseEnum("paymentMethod", raw, PaymentMethods())
}

// Validate checks that m is one of PaymentMethods.
func (m PaymentMethod) Validate() error {
	return validateEnum("paymentMethod", m, PaymentMethods())
}

// PaymentStatus is a caller-maintained label; no payment is processed here.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentStatuses lists every accepted payment status.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed}
}

// ParsePaymentStatus converts wire input to a PaymentStatus. Matching is case-insensitive.
// An empty value yields ValueIsRequiredError, an unknown one ValueIsInvalidError.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	return parseEnum("paymentStatus", raw, PaymentStatuses())
}

// Validate checks that s is one of PaymentStatuses.
func (s PaymentStatus) Validate() error {
	return validateEnum("paymentStatus", s, PaymentStatuses())
}

func parseEnum[T ~string](paramName, raw string, valid []T) (T, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	value := T(normalized)
	if err := validateEnum(paramName, value, valid); err != nil {
		return "", err
	}
	return value, nil
}

func validateEnum[T ~string](paramName string, value T, valid []T) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a valid %s", string(value), paramName))
}
