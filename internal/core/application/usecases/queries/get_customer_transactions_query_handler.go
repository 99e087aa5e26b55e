package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
)

// GetCustomerTransactionsQueryHandler reads a customer's ledger straight from
// the database.
//
// Example:
//
//	handler := NewGetCustomerTransactionsQueryHandler(db)
//	query, _ := NewGetCustomerTransactionsQuery(customerID)
//
//	postings, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list ledger: %w", err)
//	}
//	for _, p := range postings {
//	    fmt.Printf("%s %s: %s -> %s\n", p.Type, p.Amount, p.BalanceBefore, p.BalanceAfter)
//	}
type GetCustomerTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerTransactionsQueryHandler creates a handler for ledger
// listings.
func NewGetCustomerTransactionsQueryHandler(db *gorm.DB) GetCustomerTransactionsQueryHandler {
	return GetCustomerTransactionsQueryHandler{db: db}
}

// Handle executes the listing. Rows come back oldest first so the running
// balance chain reads top to bottom.
func (h GetCustomerTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerTransactionsQuery,
) ([]GetCustomerTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	postings := make([]GetCustomerTransactionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			balance_kind,
			amount,
			balance_before,
			balance_after,
			reference_id,
			description,
			flagged_for_review,
			created_at
		FROM customer_transactions
		WHERE customer_id = ?
		ORDER BY created_at, id
	`, query.CustomerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var posting GetCustomerTransactionsQueryResponse
		var id uuid.UUID
		var referenceID *uuid.UUID
		var txType, balanceKind string
		var amount, balanceBefore, balanceAfter decimal.Decimal

		err = rows.Scan(
			&id,
			&txType,
			&balanceKind,
			&amount,
			&balanceBefore,
			&balanceAfter,
			&referenceID,
			&posting.Description,
			&posting.FlaggedForReview,
			&posting.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		postingID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		posting.ID = postingID

		if referenceID != nil {
			refID, refErr := kernel.UUIDFromBytes(referenceID[:])
			if refErr != nil {
				return nil, refErr
			}
			posting.ReferenceID = &refID
		}

		posting.Type = ledger.TransactionType(txType)
		posting.BalanceKind = ledger.BalanceKind(balanceKind)
		posting.Amount = kernel.MoneyFromDecimal(amount)
		posting.BalanceBefore = kernel.MoneyFromDecimal(balanceBefore)
		posting.BalanceAfter = kernel.MoneyFromDecimal(balanceAfter)
		postings = append(postings, posting)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return postings, nil
}
