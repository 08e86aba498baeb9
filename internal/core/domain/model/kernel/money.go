package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created
// through NewMoney or MoneyFromFloat.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or MoneyFromFloat",
)

// Money is a non-negative monetary value stored as integer cents.
// Storing cents keeps the two-decimal contract of the fare exact and
// avoids float drift in persistence.
//
// Money is immutable; the zero value is invalid and fails Validate.
//
// Example:
//
//	fare, err := kernel.MoneyFromFloat(42.50)
//	if err != nil {
//	    return err
//	}
//	fare.Cents()   // 4250
//	fare.String()  // "42.50"
type Money struct {
	cents int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from integer cents.
// Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("value",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromFloat creates a Money value from a decimal amount, rounding to
// the nearest cent. Used where the fare arrives as a two-decimal number.
func MoneyFromFloat(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{}, errs.NewValueIsInvalidError("value")
	}
	return NewMoney(int64(math.Round(value * 100)))
}

// Validate ensures the Money value was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// IsEqual compares two monetary values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
