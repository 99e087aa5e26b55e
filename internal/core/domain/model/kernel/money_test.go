package kernel_test

import (
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	t.Run("should parse valid two-digit amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("12.50")

		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
		assert.Equal(t, int64(1250), m.Cents())
	})

	t.Run("should parse whole amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("100")

		require.NoError(t, err)
		assert.Equal(t, "100.00", m.String())
	})

	t.Run("should parse negative amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("-3.25")

		require.NoError(t, err)
		assert.True(t, m.IsNegative())
		assert.Equal(t, "-3.25", m.String())
	})

	t.Run("should reject more than two fraction digits", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("10.125")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "fraction digits")
	})

	t.Run("should reject non-numeric input", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("ten dollars")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("should build amount from minor units", func(t *testing.T) {
		m := kernel.NewMoneyFromCents(199)

		assert.Equal(t, "1.99", m.String())
		assert.Equal(t, int64(199), m.Cents())
	})

	t.Run("should build zero amount", func(t *testing.T) {
		m := kernel.NewMoneyFromCents(0)

		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	twelve50, _ := kernel.NewMoneyFromString("12.50")
	three25, _ := kernel.NewMoneyFromString("3.25")

	t.Run("should add exactly", func(t *testing.T) {
		assert.Equal(t, "15.75", twelve50.Add(three25).String())
	})

	t.Run("should subtract exactly", func(t *testing.T) {
		assert.Equal(t, "9.25", twelve50.Sub(three25).String())
	})

	t.Run("should negate", func(t *testing.T) {
		assert.Equal(t, "-12.50", twelve50.Neg().String())
		assert.Equal(t, "12.50", twelve50.Neg().Neg().String())
	})

	t.Run("should pick the smaller amount", func(t *testing.T) {
		assert.True(t, twelve50.Min(three25).IsEqual(three25))
		assert.True(t, three25.Min(twelve50).IsEqual(three25))
	})

	t.Run("zero value should behave as 0.00", func(t *testing.T) {
		var zero kernel.Money

		assert.True(t, zero.IsZero())
		assert.True(t, zero.IsEqual(kernel.ZeroMoney()))
		assert.True(t, twelve50.Add(zero).IsEqual(twelve50))
	})
}

func TestMoney_Round(t *testing.T) {
	t.Run("should round half up to cents", func(t *testing.T) {
		m := kernel.MoneyFromDecimal(decimal.RequireFromString("1.005"))

		assert.Equal(t, "1.01", m.Round().String())
	})

	t.Run("should round down below the midpoint", func(t *testing.T) {
		m := kernel.MoneyFromDecimal(decimal.RequireFromString("1.0049"))

		assert.Equal(t, "1.00", m.Round().String())
	})

	t.Run("should keep already rounded amounts intact", func(t *testing.T) {
		m, _ := kernel.NewMoneyFromString("7.77")

		assert.True(t, m.Round().IsEqual(m))
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small, _ := kernel.NewMoneyFromString("1.00")
	big, _ := kernel.NewMoneyFromString("2.00")

	t.Run("should compare strictly", func(t *testing.T) {
		assert.True(t, small.LessThan(big))
		assert.False(t, big.LessThan(small))
		assert.False(t, small.LessThan(small))
	})

	t.Run("should compare inclusively", func(t *testing.T) {
		assert.True(t, big.GreaterThanOrEqual(small))
		assert.True(t, big.GreaterThanOrEqual(big))
		assert.False(t, small.GreaterThanOrEqual(big))
	})

	t.Run("should treat equal values as equal regardless of representation", func(t *testing.T) {
		fromCents := kernel.NewMoneyFromCents(100)

		assert.True(t, small.IsEqual(fromCents))
	})

	t.Run("should classify sign", func(t *testing.T) {
		assert.True(t, small.IsPositive())
		assert.False(t, small.IsNegative())
		assert.True(t, small.Neg().IsNegative())
	})
}

func TestMoney_DecimalRoundTrip(t *testing.T) {
	t.Run("should survive persistence mapping", func(t *testing.T) {
		m, _ := kernel.NewMoneyFromString("42.42")

		restored := kernel.MoneyFromDecimal(m.Decimal())

		assert.True(t, restored.IsEqual(m))
	})
}
