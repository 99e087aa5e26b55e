package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"parcels/internal/pkg/errs"
)

// weightScale is the number of fraction digits carried by weights (grams
// resolution when weights are expressed in kilograms).
const weightScale = 3

// Weight is an immutable parcel weight in kilograms with three fraction
// digits. Weights are never negative; the zero value is a valid 0.000 kg.
type Weight struct {
	value decimal.Decimal
}

// NewWeightFromString parses a weight from its decimal string representation.
// Negative weights and weights with more than three fraction digits are
// rejected.
func NewWeightFromString(s string) (Weight, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}
	if d.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is negative", s))
	}
	if d.Exponent() < -weightScale {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s has more than %d fraction digits", s, weightScale))
	}
	return Weight{value: d}, nil
}

// ZeroWeight returns a 0.000 kg weight.
func ZeroWeight() Weight {
	return Weight{}
}

// Add returns the exact sum of w and other.
func (w Weight) Add(other Weight) Weight {
	return Weight{value: w.value.Add(other.value)}
}

// IsEqual reports whether both weights represent the same value.
func (w Weight) IsEqual(other Weight) bool {
	return w.value.Equal(other.value)
}

// Decimal returns the underlying decimal value for persistence mapping.
func (w Weight) Decimal() decimal.Decimal {
	return w.value
}

// WeightFromDecimal restores a Weight from a persisted decimal value.
func WeightFromDecimal(d decimal.Decimal) Weight {
	return Weight{value: d}
}

// String renders the weight with exactly three fraction digits, e.g. "1.250".
func (w Weight) String() string {
	return w.value.StringFixed(weightScale)
}
