package auditrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/parcel"
)

// GormAuditRepository implements AuditRepository using GORM. Rows only ever
// get appended or, for retention, purged; there is no update path.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// AppendStatusChange appends one parcel status-change audit row.
func (r *GormAuditRepository) AppendStatusChange(ctx context.Context, change *parcel.StatusChange) error {
	dto := statusChangeFromDomain(change)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AppendConsolidationHistory appends one consolidation event snapshot.
func (r *GormAuditRepository) AppendConsolidationHistory(ctx context.Context, history *consolidation.History) error {
	dto := historyFromDomain(history)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// PurgeStatusChangesBefore deletes status-change rows older than the cutoff
// and returns how many were removed.
func (r *GormAuditRepository) PurgeStatusChangesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("occurred_at < ?", cutoff).
		Delete(&StatusChangeDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
