package ledger

import (
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	// ErrAccountIsNotConstructed is returned when a CustomerAccount was not
	// created through its constructors.
	ErrAccountIsNotConstructed = errors.New(
		"CustomerAccount must be created via NewCustomerAccount constructor")

	// ErrAllocationOverflow is returned when an allocation tries to apply
	// more credit or balance than the customer has available.
	ErrAllocationOverflow = errors.New("allocation exceeds available balance")
)

// CustomerAccount holds a customer's two balances: the running account
// balance and the pre-paid credit balance. Every balance movement goes
// through PostToAccount or UseCredit/AddCredit, which produce the
// CustomerTransaction posting and keep the running-balance chain intact.
type CustomerAccount struct {
	customerID     kernel.UUID
	accountBalance kernel.Money
	creditBalance  kernel.Money
	version        int

	guard guard.ConstructorGuard
}

// NewCustomerAccount creates an account with zero balances.
func NewCustomerAccount(customerID kernel.UUID) (*CustomerAccount, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return &CustomerAccount{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomerAccount reconstructs an account from persistence.
func RestoreCustomerAccount(
	customerID kernel.UUID,
	accountBalance kernel.Money,
	creditBalance kernel.Money,
	version int,
) (*CustomerAccount, error) {
	account, err := NewCustomerAccount(customerID)
	if err != nil {
		return nil, err
	}

	account.accountBalance = accountBalance
	account.creditBalance = creditBalance
	account.version = version
	return account, nil
}

// Validate ensures the instance was properly constructed.
func (a *CustomerAccount) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (a *CustomerAccount) CustomerID() kernel.UUID { return a.customerID }

// AccountBalance returns the running account balance.
func (a *CustomerAccount) AccountBalance() kernel.Money { return a.accountBalance }

// CreditBalance returns the pre-paid credit balance.
func (a *CustomerAccount) CreditBalance() kernel.Money { return a.creditBalance }

// Version returns the optimistic concurrency version loaded from persistence.
func (a *CustomerAccount) Version() int { return a.version }

// PostToAccount applies a signed amount to the account balance and returns
// the posting. The posting's balance_before is captured from the current
// balance, so consecutive postings chain.
func (a *CustomerAccount) PostToAccount(
	txType TransactionType,
	amount kernel.Money,
	referenceID *kernel.UUID,
	description string,
) (*CustomerTransaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	tx, err := NewCustomerTransaction(
		a.customerID, txType, BalanceAccount, amount, a.accountBalance, referenceID, description)
	if err != nil {
		return nil, err
	}

	a.accountBalance = tx.BalanceAfter()
	return tx, nil
}

// UseCredit debits the credit balance by amount and returns the posting.
// Returns ErrAllocationOverflow when amount exceeds the available credit.
func (a *CustomerAccount) UseCredit(
	amount kernel.Money,
	referenceID *kernel.UUID,
	description string,
) (*CustomerTransaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: credit debit amount %s is negative", ErrAllocationOverflow, amount)
	}
	if a.creditBalance.LessThan(amount) {
		return nil, fmt.Errorf("%w: %s credit requested, %s available",
			ErrAllocationOverflow, amount, a.creditBalance)
	}

	tx, err := NewCustomerTransaction(
		a.customerID, TypeDebit, BalanceCredit, amount.Neg(), a.creditBalance, referenceID, description)
	if err != nil {
		return nil, err
	}

	a.creditBalance = tx.BalanceAfter()
	return tx, nil
}

// AddCredit credits the pre-paid balance by amount and returns the posting.
func (a *CustomerAccount) AddCredit(
	amount kernel.Money,
	referenceID *kernel.UUID,
	description string,
) (*CustomerTransaction, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: credit amount %s is negative", ErrAllocationOverflow, amount)
	}

	tx, err := NewCustomerTransaction(
		a.customerID, TypeCredit, BalanceCredit, amount, a.creditBalance, referenceID, description)
	if err != nil {
		return nil, err
	}

	a.creditBalance = tx.BalanceAfter()
	return tx, nil
}
