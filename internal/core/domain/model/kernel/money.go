package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fractional digits kept for every amount.
	MoneyScale = 2
	// MoneyPrecision is the total number of digits an amount may carry.
	MoneyPrecision = 12
)

// maxAmount is the largest amount with MoneyPrecision digits: 9999999999.99.
var maxAmount = decimal.New(1, MoneyPrecision-MoneyScale).Sub(decimal.New(1, -MoneyScale))

// Money is a non-negative monetary amount in currency units with exactly
// MoneyScale fractional digits. The zero value is a valid zero amount.
//
// Money never goes through float64: amounts are parsed from decimal strings or
// JSON numbers straight into shopspring/decimal, so quantity × unit price is exact.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates amount: it must lie between zero and MaxMoney and carry
// at most MoneyScale fractional digits.
//
// Example:
//
//	price, err := kernel.NewMoney("unitPrice", decimal.RequireFromString("10.00"))
func NewMoney(paramName string, amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() || amount.GreaterThan(maxAmount) {
		return Money{}, errs.NewValueIsOutOfRangeError(paramName, amount.String(), 0, MaxMoney().String())
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount.Truncate(MoneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "45.50".
func MoneyFromString(paramName, s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return NewMoney(paramName, amount)
}

// MustMoney is MoneyFromString for constants and tests; it panics on invalid input.
func MustMoney(s string) Money {
	m, err := MoneyFromString("amount", s)
	if err != nil {
		panic(err)
	}
	return m
}

// MaxMoney is the largest amount NewMoney accepts.
func MaxMoney() Money {
	return Money{amount: maxAmount}
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Multiply returns m × quantity. Quantity is validated by the caller.
func (m Money) Multiply(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// GreaterThan reports whether m is strictly larger than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// Sum adds up amounts; the sum of nothing is zero.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
