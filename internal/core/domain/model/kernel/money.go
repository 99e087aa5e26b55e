package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"parcels/internal/pkg/errs"
)

// moneyScale is the number of fraction digits carried by monetary amounts.
// All fee components and settlement amounts are fixed-point with two digits.
const moneyScale = 2

// Money is an immutable monetary amount with two fraction digits.
// Arithmetic is performed on exact decimals; rounding (half-up to cents)
// happens only at allocation boundaries via Round, never mid-computation.
//
// The zero value is a valid 0.00 amount.
//
// Example:
//
//	freight, _ := kernel.NewMoneyFromString("12.50")
//	storage, _ := kernel.NewMoneyFromString("3.25")
//	total := freight.Add(storage)
//	fmt.Println(total) // 15.75
type Money struct {
	amount decimal.Decimal
}

// NewMoneyFromString parses a monetary amount from its decimal string
// representation. Amounts with more than two fraction digits are rejected,
// since fee and settlement inputs are defined in whole cents.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	if d.Exponent() < -moneyScale {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s has more than %d fraction digits", s, moneyScale))
	}
	return Money{amount: d}, nil
}

// NewMoneyFromCents creates a Money from an amount in minor units.
func NewMoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -moneyScale)}
}

// ZeroMoney returns a 0.00 amount.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the exact sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the exact difference of m and other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns the amount with its sign inverted.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if m.amount.LessThan(other.amount) {
		return m
	}
	return other
}

// Round rounds the amount half-up to two fraction digits. Call this only
// when an allocation figure crosses a component boundary.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(moneyScale)}
}

// IsZero reports whether the amount equals 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThanOrEqual reports whether m is at least other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsEqual reports whether both amounts represent the same value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Cents returns the amount in minor units, rounded half-up.
func (m Money) Cents() int64 {
	return m.amount.Round(moneyScale).Shift(moneyScale).IntPart()
}

// Decimal returns the underlying decimal value for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// MoneyFromDecimal restores a Money from a persisted decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// String renders the amount with exactly two fraction digits, e.g. "100.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
