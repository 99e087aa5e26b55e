package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for customer accounts
// and their append-only transaction ledger.
type LedgerRepository interface {
	// GetAccount retrieves a customer's account with both balances.
	GetAccount(ctx context.Context, customerID kernel.UUID) (*ledger.CustomerAccount, error)

	// AddAccount persists a new customer account.
	AddAccount(ctx context.Context, account *ledger.CustomerAccount) error

	// UpdateAccount persists balance changes with an optimistic version
	// check, serializing concurrent postings for one customer.
	UpdateAccount(ctx context.Context, account *ledger.CustomerAccount) error

	// AddTransaction appends a posting to the ledger. Postings are never
	// updated or deleted through this port; review annotations go through
	// UpdateTransactionReview.
	AddTransaction(ctx context.Context, tx *ledger.CustomerTransaction) error

	// GetTransaction retrieves a posting by its unique identifier.
	GetTransaction(ctx context.Context, id kernel.UUID) (*ledger.CustomerTransaction, error)

	// UpdateTransactionReview persists the flag-for-review and resolution
	// fields of a posting. All other columns stay untouched.
	UpdateTransactionReview(ctx context.Context, tx *ledger.CustomerTransaction) error
}
