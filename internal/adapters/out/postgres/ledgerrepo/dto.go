// Package ledgerrepo provides data transfer objects and mapping functions
// for customer account and ledger posting persistence.
package ledgerrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
)

// CustomerAccountDTO represents the database structure for customer balances.
type CustomerAccountDTO struct {
	CustomerID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountBalance decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreditBalance  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Version        int
}

// TableName specifies the database table name for customer accounts.
func (CustomerAccountDTO) TableName() string {
	return "customer_accounts"
}

// CustomerTransactionDTO represents the database structure for ledger
// postings. Rows are append-only; only the review columns are ever updated.
type CustomerTransactionDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;index"`
	Type             string          `gorm:"type:varchar(20)"`
	BalanceKind      string          `gorm:"type:varchar(10)"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2)"`
	BalanceBefore    decimal.Decimal `gorm:"type:numeric(14,2)"`
	BalanceAfter     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ReferenceID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description      string
	FlaggedForReview bool `gorm:"index"`
	FlagReason       string
	AdminResponse    string
	ResolvedAt       *time.Time
	CreatedAt        time.Time `gorm:"index"`
}

// TableName specifies the database table name for ledger postings.
func (CustomerTransactionDTO) TableName() string {
	return "customer_transactions"
}

// accountFromDomain converts a customer account to its database
// representation.
func accountFromDomain(account *ledger.CustomerAccount) CustomerAccountDTO {
	return CustomerAccountDTO{
		CustomerID:     account.CustomerID().Bytes(),
		AccountBalance: account.AccountBalance().Decimal(),
		CreditBalance:  account.CreditBalance().Decimal(),
		Version:        account.Version(),
	}
}

// accountToDomain converts a database DTO to a customer account.
func accountToDomain(dto CustomerAccountDTO) (*ledger.CustomerAccount, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreCustomerAccount(
		customerID,
		kernel.MoneyFromDecimal(dto.AccountBalance),
		kernel.MoneyFromDecimal(dto.CreditBalance),
		dto.Version,
	)
}

// transactionFromDomain converts a ledger posting to its database
// representation.
func transactionFromDomain(tx *ledger.CustomerTransaction) CustomerTransactionDTO {
	var referenceID *uuid.UUID
	if id := tx.ReferenceID(); id != nil {
		raw := id.Bytes()
		referenceID = &raw
	}

	return CustomerTransactionDTO{
		ID:               tx.ID().Bytes(),
		CustomerID:       tx.CustomerID().Bytes(),
		Type:             string(tx.Type()),
		BalanceKind:      string(tx.BalanceKind()),
		Amount:           tx.Amount().Decimal(),
		BalanceBefore:    tx.BalanceBefore().Decimal(),
		BalanceAfter:     tx.BalanceAfter().Decimal(),
		ReferenceID:      referenceID,
		Description:      tx.Description(),
		FlaggedForReview: tx.FlaggedForReview(),
		FlagReason:       tx.FlagReason(),
		AdminResponse:    tx.AdminResponse(),
		ResolvedAt:       tx.ResolvedAt(),
		CreatedAt:        tx.CreatedAt(),
	}
}

// transactionToDomain converts a database DTO to a ledger posting.
func transactionToDomain(dto CustomerTransactionDTO) (*ledger.CustomerTransaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var referenceID *kernel.UUID
	if dto.ReferenceID != nil {
		refID, refErr := kernel.UUIDFromBytes((*dto.ReferenceID)[:])
		if refErr != nil {
			return nil, refErr
		}
		referenceID = &refID
	}

	return ledger.RestoreCustomerTransaction(
		id,
		customerID,
		ledger.TransactionType(dto.Type),
		ledger.BalanceKind(dto.BalanceKind),
		kernel.MoneyFromDecimal(dto.Amount),
		kernel.MoneyFromDecimal(dto.BalanceBefore),
		kernel.MoneyFromDecimal(dto.BalanceAfter),
		referenceID,
		dto.Description,
		dto.FlaggedForReview,
		dto.FlagReason,
		dto.AdminResponse,
		dto.ResolvedAt,
		dto.CreatedAt,
	)
}
