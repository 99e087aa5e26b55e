// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, and post-commit event publication.
package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ConsolidationRepoFactory provides access to the consolidation repository within a transaction.
	ConsolidationRepoFactory interface {
		ConsolidationRepository() ports.ConsolidationRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// DistributionRepoFactory provides access to the distribution repository within a transaction.
	DistributionRepoFactory interface {
		DistributionRepository() ports.DistributionRepository
	}

	// AuditRepoFactory provides access to the audit recorder within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// StatusUoW manages transactions for single-parcel status changes.
	StatusUoW interface {
		TxManager
		ParcelRepoFactory
		AuditRepoFactory
	}

	// StatusUoWFactory creates unit of work instances for status changes.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// ConsolidationUoW manages transactions spanning parcels, the
	// consolidation aggregate, and the audit trail.
	ConsolidationUoW interface {
		TxManager
		ParcelRepoFactory
		ConsolidationRepoFactory
		AuditRepoFactory
	}

	// ConsolidationUoWFactory creates unit of work instances for
	// consolidate/unconsolidate operations.
	ConsolidationUoWFactory interface {
		Create() ConsolidationUoW
	}

	// ParcelFeesUoW manages transactions for fee reassessments, which touch
	// the parcel and possibly its consolidation's totals.
	ParcelFeesUoW interface {
		TxManager
		ParcelRepoFactory
		ConsolidationRepoFactory
	}

	// ParcelFeesUoWFactory creates unit of work instances for fee updates.
	ParcelFeesUoWFactory interface {
		Create() ParcelFeesUoW
	}

	// LedgerUoW manages transactions for ledger review operations.
	LedgerUoW interface {
		TxManager
		LedgerRepoFactory
	}

	// LedgerUoWFactory creates unit of work instances for ledger operations.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// DistributionUoW manages the widest transaction in the core: a
	// settlement touches parcels, consolidations, the ledger, the
	// distribution tables, and the audit trail atomically.
	DistributionUoW interface {
		TxManager
		ParcelRepoFactory
		ConsolidationRepoFactory
		LedgerRepoFactory
		DistributionRepoFactory
		AuditRepoFactory
	}

	// DistributionUoWFactory creates unit of work instances for distributions.
	DistributionUoWFactory interface {
		Create() DistributionUoW
	}
)
