package ledgerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/ledger"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetAccount retrieves a customer's account.
func (r *GormLedgerRepository) GetAccount(ctx context.Context, customerID kernel.UUID) (*ledger.CustomerAccount, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerAccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer account", customerID.String())
		}
		return nil, err
	}

	return accountToDomain(dto)
}

// AddAccount persists a new customer account with version 1.
func (r *GormLedgerRepository) AddAccount(ctx context.Context, account *ledger.CustomerAccount) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := accountFromDomain(account)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(account.CustomerID(), account)
	return nil
}

// UpdateAccount persists balance changes with an optimistic version check.
// Concurrent postings against one customer serialize here: the loser fails
// with ports.ErrConcurrentModification and retries.
func (r *GormLedgerRepository) UpdateAccount(ctx context.Context, account *ledger.CustomerAccount) error {
	if err := account.Validate(); err != nil {
		return err
	}

	dto := accountFromDomain(account)
	dto.Version = account.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&CustomerAccountDTO{}).
		Where("customer_id = ? AND version = ?", dto.CustomerID, account.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	r.tracker.TrackAggregate(account.CustomerID(), account)
	return nil
}

// AddTransaction appends a posting to the ledger.
func (r *GormLedgerRepository) AddTransaction(ctx context.Context, tx *ledger.CustomerTransaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

// GetTransaction retrieves a posting by ID.
func (r *GormLedgerRepository) GetTransaction(ctx context.Context, id kernel.UUID) (*ledger.CustomerTransaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerTransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer transaction", id.String())
		}
		return nil, err
	}

	return transactionToDomain(dto)
}

// UpdateTransactionReview persists the review columns of a posting. The
// posting amounts and balances stay immutable.
func (r *GormLedgerRepository) UpdateTransactionReview(ctx context.Context, tx *ledger.CustomerTransaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(tx)
	result := r.db.WithContext(ctx).
		Model(&CustomerTransactionDTO{}).
		Where("id = ?", dto.ID).
		Select("flagged_for_review", "flag_reason", "admin_response", "resolved_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer transaction", tx.ID().String())
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}
