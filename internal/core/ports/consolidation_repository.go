package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
)

// ConsolidationRepository defines the persistence contract for consolidated
// shipments.
type ConsolidationRepository interface {
	// Add persists a new consolidated shipment.
	Add(ctx context.Context, aggregate *consolidation.ConsolidatedPackage) error

	// Update persists changes to an existing consolidated shipment with an
	// optimistic version check.
	Update(ctx context.Context, aggregate *consolidation.ConsolidatedPackage) error

	// Get retrieves a consolidated shipment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consolidation.ConsolidatedPackage, error)

	// NextDailySequence returns the next sequence number for consolidated
	// tracking numbers created on the given day, starting at 1.
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}
