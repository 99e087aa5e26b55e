package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel. The update carries an
	// optimistic version check: a stale aggregate fails with
	// ErrConcurrentModification and no rows changed.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetMany retrieves the parcels for the given identifiers. Missing
	// identifiers yield an ObjectNotFoundError.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// GetByConsolidationID retrieves the current members of a consolidation.
	GetByConsolidationID(ctx context.Context, consolidationID kernel.UUID) ([]*parcel.Parcel, error)
}
