package ledger_test

import (
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewCustomerAccount(t *testing.T) {
	t.Run("should create account with zero balances", func(t *testing.T) {
		customerID := kernel.NewUUID()

		account, err := ledger.NewCustomerAccount(customerID)

		require.NoError(t, err)
		require.NoError(t, account.Validate())
		assert.True(t, account.CustomerID().IsEqual(customerID))
		assert.True(t, account.AccountBalance().IsZero())
		assert.True(t, account.CreditBalance().IsZero())
		assert.Equal(t, 0, account.Version())
	})

	t.Run("should fail with invalid customer ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := ledger.NewCustomerAccount(invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value account", func(t *testing.T) {
		var account ledger.CustomerAccount

		require.ErrorIs(t, account.Validate(), ledger.ErrAccountIsNotConstructed)
	})
}

func TestCustomerAccount_PostToAccount(t *testing.T) {
	t.Run("should chain consecutive postings", func(t *testing.T) {
		account, err := ledger.NewCustomerAccount(kernel.NewUUID())
		require.NoError(t, err)

		first, err := account.PostToAccount(ledger.TypeDistribution, money(t, "-21.75"), nil, "settlement")
		require.NoError(t, err)
		assert.True(t, first.BalanceBefore().IsZero())
		assert.Equal(t, "-21.75", first.BalanceAfter().String())
		assert.Equal(t, "-21.75", account.AccountBalance().String())

		second, err := account.PostToAccount(ledger.TypePayment, money(t, "20.00"), nil, "cash")
		require.NoError(t, err)
		assert.Equal(t, "-21.75", second.BalanceBefore().String())
		assert.Equal(t, "-1.75", second.BalanceAfter().String())
		assert.Equal(t, "-1.75", account.AccountBalance().String())
	})

	t.Run("should leave the credit balance untouched", func(t *testing.T) {
		account, _ := ledger.NewCustomerAccount(kernel.NewUUID())

		_, err := account.PostToAccount(ledger.TypeCharge, money(t, "-5.00"), nil, "storage")

		require.NoError(t, err)
		assert.True(t, account.CreditBalance().IsZero())
	})

	t.Run("should carry the reference through", func(t *testing.T) {
		account, _ := ledger.NewCustomerAccount(kernel.NewUUID())
		refID := kernel.NewUUID()

		tx, err := account.PostToAccount(ledger.TypeDistribution, money(t, "-1.00"), &refID, "settlement")

		require.NoError(t, err)
		require.NotNil(t, tx.ReferenceID())
		assert.True(t, tx.ReferenceID().IsEqual(refID))
		assert.Equal(t, ledger.BalanceAccount, tx.BalanceKind())
	})
}

func TestCustomerAccount_UseCredit(t *testing.T) {
	restore := func(t *testing.T, credit string) *ledger.CustomerAccount {
		t.Helper()
		account, err := ledger.RestoreCustomerAccount(
			kernel.NewUUID(), kernel.ZeroMoney(), money(t, credit), 1)
		require.NoError(t, err)
		return account
	}

	t.Run("should debit the credit balance", func(t *testing.T) {
		account := restore(t, "50.00")

		tx, err := account.UseCredit(money(t, "12.50"), nil, "applied to settlement")

		require.NoError(t, err)
		assert.Equal(t, ledger.TypeDebit, tx.Type())
		assert.Equal(t, ledger.BalanceCredit, tx.BalanceKind())
		assert.Equal(t, "-12.50", tx.Amount().String())
		assert.Equal(t, "37.50", account.CreditBalance().String())
	})

	t.Run("should allow using the full credit", func(t *testing.T) {
		account := restore(t, "10.00")

		_, err := account.UseCredit(money(t, "10.00"), nil, "")

		require.NoError(t, err)
		assert.True(t, account.CreditBalance().IsZero())
	})

	t.Run("should reject overdraw", func(t *testing.T) {
		account := restore(t, "10.00")

		_, err := account.UseCredit(money(t, "10.01"), nil, "")

		require.ErrorIs(t, err, ledger.ErrAllocationOverflow)
		assert.Equal(t, "10.00", account.CreditBalance().String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		account := restore(t, "10.00")

		_, err := account.UseCredit(money(t, "-1.00"), nil, "")

		require.ErrorIs(t, err, ledger.ErrAllocationOverflow)
	})
}

func TestCustomerAccount_AddCredit(t *testing.T) {
	t.Run("should credit the pre-paid balance", func(t *testing.T) {
		account, _ := ledger.NewCustomerAccount(kernel.NewUUID())

		tx, err := account.AddCredit(money(t, "25.00"), nil, "top-up")

		require.NoError(t, err)
		assert.Equal(t, ledger.TypeCredit, tx.Type())
		assert.Equal(t, "25.00", account.CreditBalance().String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		account, _ := ledger.NewCustomerAccount(kernel.NewUUID())

		_, err := account.AddCredit(money(t, "-25.00"), nil, "")

		require.ErrorIs(t, err, ledger.ErrAllocationOverflow)
	})
}
