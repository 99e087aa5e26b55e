package ledger_test

import (
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerTransaction(t *testing.T) {
	t.Run("should compute balance after from before plus amount", func(t *testing.T) {
		tx, err := ledger.NewCustomerTransaction(
			kernel.NewUUID(), ledger.TypePayment, ledger.BalanceAccount,
			money(t, "20.00"), money(t, "-21.75"), nil, "cash")

		require.NoError(t, err)
		require.NoError(t, tx.Validate())
		assert.Equal(t, "-1.75", tx.BalanceAfter().String())
		assert.False(t, tx.FlaggedForReview())
		assert.Nil(t, tx.ResolvedAt())
		assert.False(t, tx.CreatedAt().IsZero())
	})

	t.Run("should reject unknown transaction type", func(t *testing.T) {
		_, err := ledger.NewCustomerTransaction(
			kernel.NewUUID(), ledger.TransactionType("refund"), ledger.BalanceAccount,
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil, "")

		require.Error(t, err)
	})

	t.Run("should reject unknown balance kind", func(t *testing.T) {
		_, err := ledger.NewCustomerTransaction(
			kernel.NewUUID(), ledger.TypePayment, ledger.BalanceKind("escrow"),
			kernel.ZeroMoney(), kernel.ZeroMoney(), nil, "")

		require.Error(t, err)
	})

	t.Run("should reject invalid reference ID", func(t *testing.T) {
		var invalidRef kernel.UUID

		_, err := ledger.NewCustomerTransaction(
			kernel.NewUUID(), ledger.TypePayment, ledger.BalanceAccount,
			kernel.ZeroMoney(), kernel.ZeroMoney(), &invalidRef, "")

		require.Error(t, err)
	})
}

func TestRestoreCustomerTransaction(t *testing.T) {
	t.Run("should restore a persisted posting", func(t *testing.T) {
		id := kernel.NewUUID()
		createdAt := time.Now().Add(-time.Hour)

		tx, err := ledger.RestoreCustomerTransaction(
			id, kernel.NewUUID(), ledger.TypeWriteOff, ledger.BalanceAccount,
			money(t, "3.00"), money(t, "-3.00"), money(t, "0.00"),
			nil, "small remainder", true, "above threshold", "", nil, createdAt)

		require.NoError(t, err)
		assert.True(t, tx.ID().IsEqual(id))
		assert.True(t, tx.FlaggedForReview())
		assert.Equal(t, "above threshold", tx.FlagReason())
		assert.Equal(t, createdAt, tx.CreatedAt())
	})

	t.Run("should reject broken balance arithmetic", func(t *testing.T) {
		_, err := ledger.RestoreCustomerTransaction(
			kernel.NewUUID(), kernel.NewUUID(), ledger.TypePayment, ledger.BalanceAccount,
			money(t, "10.00"), money(t, "0.00"), money(t, "11.00"),
			nil, "", false, "", "", nil, time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not equal")
	})
}

func TestCustomerTransaction_Review(t *testing.T) {
	newPosting := func(t *testing.T) *ledger.CustomerTransaction {
		t.Helper()
		tx, err := ledger.NewCustomerTransaction(
			kernel.NewUUID(), ledger.TypeWriteOff, ledger.BalanceAccount,
			money(t, "7.00"), kernel.ZeroMoney(), nil, "write-off")
		require.NoError(t, err)
		return tx
	}

	t.Run("should flag once with a reason", func(t *testing.T) {
		tx := newPosting(t)

		require.NoError(t, tx.FlagForReview("above threshold"))

		assert.True(t, tx.FlaggedForReview())
		assert.Equal(t, "above threshold", tx.FlagReason())

		require.ErrorIs(t, tx.FlagForReview("again"), ledger.ErrTransactionAlreadyFlagged)
	})

	t.Run("should require a flag reason", func(t *testing.T) {
		tx := newPosting(t)

		require.Error(t, tx.FlagForReview(""))
		assert.False(t, tx.FlaggedForReview())
	})

	t.Run("should resolve an open review once", func(t *testing.T) {
		tx := newPosting(t)
		require.NoError(t, tx.FlagForReview("above threshold"))
		at := time.Now()

		require.NoError(t, tx.Resolve("approved by supervisor", at))

		assert.Equal(t, "approved by supervisor", tx.AdminResponse())
		require.NotNil(t, tx.ResolvedAt())
		assert.Equal(t, at, *tx.ResolvedAt())

		require.ErrorIs(t, tx.Resolve("again", at), ledger.ErrTransactionAlreadyResolved)
	})

	t.Run("should reject resolving an unflagged posting", func(t *testing.T) {
		tx := newPosting(t)

		require.ErrorIs(t, tx.Resolve("nothing to do", time.Now()), ledger.ErrTransactionNotFlagged)
	})

	t.Run("should require an admin response", func(t *testing.T) {
		tx := newPosting(t)
		require.NoError(t, tx.FlagForReview("above threshold"))

		require.Error(t, tx.Resolve("", time.Now()))
		assert.Nil(t, tx.ResolvedAt())
	})

	t.Run("flagging should not alter posting amounts", func(t *testing.T) {
		tx := newPosting(t)
		before := tx.BalanceBefore()
		after := tx.BalanceAfter()

		require.NoError(t, tx.FlagForReview("above threshold"))

		assert.True(t, tx.BalanceBefore().IsEqual(before))
		assert.True(t, tx.BalanceAfter().IsEqual(after))
	})
}
