package ports

import (
	"context"

	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"
)

// DistributionRepository defines the persistence contract for settlement
// receipts and their line items.
type DistributionRepository interface {
	// Add persists a distribution header with its items. A receipt-number
	// collision fails with distribution.ErrDuplicateReceiptNumber; callers
	// regenerate the number and retry.
	Add(ctx context.Context, aggregate *distribution.PackageDistribution) error

	// Update persists the dispute annotation and payment-status correction,
	// the only mutable parts of a distribution.
	Update(ctx context.Context, aggregate *distribution.PackageDistribution) error

	// Get retrieves a distribution with its items.
	Get(ctx context.Context, id kernel.UUID) (*distribution.PackageDistribution, error)
}
