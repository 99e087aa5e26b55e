package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
)

// ManifestLockChecker consults the external manifest collaborator. A parcel
// listed on a locked manifest must not be mutated; the check runs before any
// status change or distribution touches the parcel.
type ManifestLockChecker interface {
	// IsLocked reports whether the parcel's manifest is locked.
	IsLocked(ctx context.Context, parcelID kernel.UUID) (bool, error)
}
