// Package manifest provides the lock check against the manifest
// collaborator. Manifests live outside this service; the collaborator
// maintains the manifest_locks table and this adapter only reads it.
package manifest

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
)

// ManifestLockDTO mirrors one row of the lock table maintained by the
// manifest collaborator.
type ManifestLockDTO struct {
	ParcelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Locked   bool
}

// TableName specifies the database table name for manifest locks.
func (ManifestLockDTO) TableName() string {
	return "manifest_locks"
}

// GormManifestLockChecker implements ports.ManifestLockChecker by reading
// the collaborator's lock table. A parcel with no row is unlocked.
type GormManifestLockChecker struct {
	db *gorm.DB
}

// NewGormManifestLockChecker creates a lock checker over the given
// connection.
func NewGormManifestLockChecker(db *gorm.DB) *GormManifestLockChecker {
	return &GormManifestLockChecker{db: db}
}

// IsLocked reports whether the parcel's manifest is locked.
func (c *GormManifestLockChecker) IsLocked(ctx context.Context, parcelID kernel.UUID) (bool, error) {
	if err := parcelID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := c.db.WithContext(ctx).
		Model(&ManifestLockDTO{}).
		Where("parcel_id = ? AND locked", parcelID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
