package distribution_test

import (
	"testing"
	"time"

	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestCalculatePaymentStatus(t *testing.T) {
	total := func(t *testing.T) kernel.Money { return money(t, "100.00") }

	t.Run("should be unpaid with nothing received", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			total(t), kernel.ZeroMoney(), kernel.ZeroMoney())

		assert.Equal(t, distribution.PaymentUnpaid, status)
	})

	t.Run("should be partial with some cash", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			total(t), money(t, "40.00"), kernel.ZeroMoney())

		assert.Equal(t, distribution.PaymentPartial, status)
	})

	t.Run("should be paid when cash plus credit covers the total", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			total(t), money(t, "60.00"), money(t, "40.00"))

		assert.Equal(t, distribution.PaymentPaid, status)
	})

	t.Run("should be paid on overpayment", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			total(t), money(t, "120.00"), kernel.ZeroMoney())

		assert.Equal(t, distribution.PaymentPaid, status)
	})

	t.Run("credit alone should count toward the classification", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			total(t), kernel.ZeroMoney(), money(t, "100.00"))

		assert.Equal(t, distribution.PaymentPaid, status)
	})

	t.Run("zero total should classify as paid", func(t *testing.T) {
		status := distribution.CalculatePaymentStatus(
			kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.ZeroMoney())

		assert.Equal(t, distribution.PaymentPaid, status)
	})
}

func TestComputeOutstanding(t *testing.T) {
	t.Run("should subtract every settlement source", func(t *testing.T) {
		outstanding := distribution.ComputeOutstanding(
			money(t, "100.00"), money(t, "50.00"), money(t, "20.00"),
			money(t, "10.00"), money(t, "5.00"))

		assert.Equal(t, "15.00", outstanding.String())
	})

	t.Run("should floor at zero on oversettlement", func(t *testing.T) {
		outstanding := distribution.ComputeOutstanding(
			money(t, "100.00"), money(t, "90.00"), money(t, "20.00"),
			kernel.ZeroMoney(), kernel.ZeroMoney())

		assert.True(t, outstanding.IsZero())
	})

	t.Run("should equal the total with nothing settled", func(t *testing.T) {
		outstanding := distribution.ComputeOutstanding(
			money(t, "42.50"), kernel.ZeroMoney(), kernel.ZeroMoney(),
			kernel.ZeroMoney(), kernel.ZeroMoney())

		assert.Equal(t, "42.50", outstanding.String())
	})
}

func TestAllocateCredit(t *testing.T) {
	t.Run("should apply the full outstanding when credit suffices", func(t *testing.T) {
		allocated := distribution.AllocateCredit(money(t, "30.00"), money(t, "50.00"))

		assert.Equal(t, "30.00", allocated.String())
	})

	t.Run("should cap at the available credit", func(t *testing.T) {
		allocated := distribution.AllocateCredit(money(t, "30.00"), money(t, "12.50"))

		assert.Equal(t, "12.50", allocated.String())
	})

	t.Run("should allocate nothing when nothing is outstanding", func(t *testing.T) {
		assert.True(t, distribution.AllocateCredit(kernel.ZeroMoney(), money(t, "50.00")).IsZero())
		assert.True(t, distribution.AllocateCredit(money(t, "-5.00"), money(t, "50.00")).IsZero())
	})

	t.Run("should allocate nothing from negative credit", func(t *testing.T) {
		assert.True(t, distribution.AllocateCredit(money(t, "30.00"), money(t, "-1.00")).IsZero())
	})
}

func TestNewReceiptNumber(t *testing.T) {
	now := time.Date(2025, 9, 1, 15, 4, 5, 0, time.UTC)

	t.Run("should render timestamp and three-digit suffix", func(t *testing.T) {
		assert.Equal(t, "RCP20250901150405007", distribution.NewReceiptNumber(now, 7))
	})

	t.Run("should wrap suffixes into three digits", func(t *testing.T) {
		assert.Equal(t, "RCP20250901150405123", distribution.NewReceiptNumber(now, 123))
		assert.Equal(t, "RCP20250901150405123", distribution.NewReceiptNumber(now, 1123))
	})
}
