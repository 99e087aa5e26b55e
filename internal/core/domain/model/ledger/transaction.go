package ledger

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	// ErrTransactionIsNotConstructed is returned when a CustomerTransaction
	// was not created through its constructors.
	ErrTransactionIsNotConstructed = errors.New(
		"CustomerTransaction must be created via NewCustomerTransaction constructor")

	// ErrTransactionAlreadyFlagged is returned when flagging a transaction
	// that is already under review.
	ErrTransactionAlreadyFlagged = errors.New("transaction is already flagged for review")

	// ErrTransactionNotFlagged is returned when resolving a transaction that
	// was never flagged.
	ErrTransactionNotFlagged = errors.New("transaction is not flagged for review")

	// ErrTransactionAlreadyResolved is returned when resolving a review twice.
	ErrTransactionAlreadyResolved = errors.New("transaction review is already resolved")
)

// TransactionType is the business reason for a ledger posting.
type TransactionType string

const (
	TypePayment      TransactionType = "payment"
	TypeCharge       TransactionType = "charge"
	TypeCredit       TransactionType = "credit"
	TypeDebit        TransactionType = "debit"
	TypeDistribution TransactionType = "distribution"
	TypeAdjustment   TransactionType = "adjustment"
	TypeWriteOff     TransactionType = "write_off"
)

// Validate checks the type is one of the defined posting reasons.
func (t TransactionType) Validate() error {
	switch t {
	case TypePayment, TypeCharge, TypeCredit, TypeDebit, TypeDistribution, TypeAdjustment, TypeWriteOff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("transaction type",
			fmt.Errorf("%q is not a valid transaction type", string(t)))
	}
}

// BalanceKind identifies which customer balance a posting moves.
type BalanceKind string

const (
	// BalanceAccount targets the customer's running account balance.
	BalanceAccount BalanceKind = "account"
	// BalanceCredit targets the customer's pre-paid credit balance.
	BalanceCredit BalanceKind = "credit"
)

// Validate checks the kind is one of the two customer balances.
func (k BalanceKind) Validate() error {
	if k != BalanceAccount && k != BalanceCredit {
		return errs.NewValueIsInvalidErrorWithCause("balance kind",
			fmt.Errorf("%q is not a valid balance kind", string(k)))
	}
	return nil
}

// CustomerTransaction is an immutable ledger posting recording a change to a
// customer balance.
//
// Invariants:
//   - balance_after = balance_before + signed(amount), validated at
//     construction and on restore
//   - for one customer and balance kind, postings ordered by creation time
//     chain: each entry's balance_after equals the next entry's
//     balance_before
//   - postings are never edited; corrections are new postings. Flagging for
//     review and its resolution are append-style state additions, the only
//     mutation the type permits.
type CustomerTransaction struct {
	id               kernel.UUID
	customerID       kernel.UUID
	txType           TransactionType
	balanceKind      BalanceKind
	amount           kernel.Money
	balanceBefore    kernel.Money
	balanceAfter     kernel.Money
	referenceID      *kernel.UUID
	description      string
	flaggedForReview bool
	flagReason       string
	adminResponse    string
	resolvedAt       *time.Time
	createdAt        time.Time

	guard guard.ConstructorGuard
}

// NewCustomerTransaction posts a balance change. The resulting balance is
// computed here, never supplied, so the chain invariant holds by
// construction. The amount is signed: negative amounts decrease the balance.
func NewCustomerTransaction(
	customerID kernel.UUID,
	txType TransactionType,
	balanceKind BalanceKind,
	amount kernel.Money,
	balanceBefore kernel.Money,
	referenceID *kernel.UUID,
	description string,
) (*CustomerTransaction, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if err := balanceKind.Validate(); err != nil {
		return nil, err
	}
	if referenceID != nil {
		if err := referenceID.Validate(); err != nil {
			return nil, err
		}
	}

	return &CustomerTransaction{
		id:            kernel.NewUUID(),
		customerID:    customerID,
		txType:        txType,
		balanceKind:   balanceKind,
		amount:        amount,
		balanceBefore: balanceBefore,
		balanceAfter:  balanceBefore.Add(amount),
		referenceID:   referenceID,
		description:   description,
		createdAt:     time.Now().UTC(),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomerTransaction reconstructs a posting from persistence and
// re-checks the balance arithmetic.
func RestoreCustomerTransaction(
	id kernel.UUID,
	customerID kernel.UUID,
	txType TransactionType,
	balanceKind BalanceKind,
	amount kernel.Money,
	balanceBefore kernel.Money,
	balanceAfter kernel.Money,
	referenceID *kernel.UUID,
	description string,
	flaggedForReview bool,
	flagReason string,
	adminResponse string,
	resolvedAt *time.Time,
	createdAt time.Time,
) (*CustomerTransaction, error) {
	tx, err := NewCustomerTransaction(customerID, txType, balanceKind, amount, balanceBefore, referenceID, description)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	if !tx.balanceAfter.IsEqual(balanceAfter) {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance after",
			fmt.Errorf("stored %s does not equal %s + %s", balanceAfter, balanceBefore, amount))
	}

	tx.id = id
	tx.flaggedForReview = flaggedForReview
	tx.flagReason = flagReason
	tx.adminResponse = adminResponse
	tx.resolvedAt = resolvedAt
	tx.createdAt = createdAt
	return tx, nil
}

// Validate ensures the instance was properly constructed.
func (t *CustomerTransaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// ID returns the posting's unique identifier.
func (t *CustomerTransaction) ID() kernel.UUID { return t.id }

// CustomerID returns the owning customer's identifier.
func (t *CustomerTransaction) CustomerID() kernel.UUID { return t.customerID }

// Type returns the business reason for the posting.
func (t *CustomerTransaction) Type() TransactionType { return t.txType }

// BalanceKind returns which customer balance the posting moved.
func (t *CustomerTransaction) BalanceKind() BalanceKind { return t.balanceKind }

// Amount returns the signed posting amount.
func (t *CustomerTransaction) Amount() kernel.Money { return t.amount }

// BalanceBefore returns the balance prior to the posting.
func (t *CustomerTransaction) BalanceBefore() kernel.Money { return t.balanceBefore }

// BalanceAfter returns the balance after the posting.
func (t *CustomerTransaction) BalanceAfter() kernel.Money { return t.balanceAfter }

// ReferenceID returns the related aggregate identifier, e.g. a distribution.
func (t *CustomerTransaction) ReferenceID() *kernel.UUID { return t.referenceID }

// Description returns the free-text posting description.
func (t *CustomerTransaction) Description() string { return t.description }

// FlaggedForReview reports whether the posting awaits or received review.
func (t *CustomerTransaction) FlaggedForReview() bool { return t.flaggedForReview }

// FlagReason returns why the posting was flagged.
func (t *CustomerTransaction) FlagReason() string { return t.flagReason }

// AdminResponse returns the review resolution note.
func (t *CustomerTransaction) AdminResponse() string { return t.adminResponse }

// ResolvedAt returns when the review was resolved, nil while open.
func (t *CustomerTransaction) ResolvedAt() *time.Time { return t.resolvedAt }

// CreatedAt returns when the posting was created.
func (t *CustomerTransaction) CreatedAt() time.Time { return t.createdAt }

// FlagForReview marks the posting for manual review. The posting itself is
// not altered; this is an append-style state addition.
func (t *CustomerTransaction) FlagForReview(reason string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.flaggedForReview {
		return ErrTransactionAlreadyFlagged
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("flag reason")
	}

	t.flaggedForReview = true
	t.flagReason = reason
	return nil
}

// Resolve closes an open review with an admin response.
func (t *CustomerTransaction) Resolve(adminResponse string, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.flaggedForReview {
		return ErrTransactionNotFlagged
	}
	if t.resolvedAt != nil {
		return ErrTransactionAlreadyResolved
	}
	if adminResponse == "" {
		return errs.NewValueIsRequiredError("admin response")
	}

	t.adminResponse = adminResponse
	t.resolvedAt = &at
	return nil
}
