// Package queries contains read-only operations over the database.
// Implements the query side of the CQRS architecture: handlers read with raw
// SQL and return plain response structs, bypassing the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetCustomerTransactionsQueryIsNotConstructed = errors.New(
		"GetCustomerTransactionsQuery must be created via NewGetCustomerTransactionsQuery constructor",
	)
)

// GetCustomerTransactionsQuery retrieves a customer's ledger postings in
// chain order, oldest first, so each row's balance_after equals the next
// row's balance_before per balance kind.
type GetCustomerTransactionsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerTransactionsQuery creates a ledger listing query for one
// customer.
func NewGetCustomerTransactionsQuery(customerID kernel.UUID) (GetCustomerTransactionsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerTransactionsQuery{}, err
	}

	return GetCustomerTransactionsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerTransactionsQueryIsNotConstructed)
}

// CustomerID returns the customer whose ledger is listed.
func (q GetCustomerTransactionsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetCustomerTransactionsQueryResponse is one ledger posting row.
type GetCustomerTransactionsQueryResponse struct {
	ID               kernel.UUID
	Type             ledger.TransactionType
	BalanceKind      ledger.BalanceKind
	Amount           kernel.Money
	BalanceBefore    kernel.Money
	BalanceAfter     kernel.Money
	ReferenceID      *kernel.UUID
	Description      string
	FlaggedForReview bool
	CreatedAt        time.Time
}
