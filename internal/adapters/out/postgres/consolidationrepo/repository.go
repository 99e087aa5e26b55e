package consolidationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// GormConsolidationRepository implements ConsolidationRepository using GORM.
type GormConsolidationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRepository creates a new GORM consolidation repository.
func NewGormConsolidationRepository(db *gorm.DB, tracker aggregateTracker) *GormConsolidationRepository {
	return &GormConsolidationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consolidated shipment to the database with version 1.
func (r *GormConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.ConsolidatedPackage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing consolidated shipment with an optimistic version
// check.
func (r *GormConsolidationRepository) Update(ctx context.Context, aggregate *consolidation.ConsolidatedPackage) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ConsolidatedPackageDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consolidated shipment by ID.
func (r *GormConsolidationRepository) Get(
	ctx context.Context,
	id kernel.UUID,
) (*consolidation.ConsolidatedPackage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsolidatedPackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextDailySequence returns the next tracking-number sequence for the given
// day, starting at 1. The count is racy under concurrent grouping; the unique
// index on tracking_number catches collisions and the caller's transaction
// rolls back.
func (r *GormConsolidationRepository) NextDailySequence(ctx context.Context, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ConsolidatedPackageDTO{}).
		Where("consolidated_at >= ? AND consolidated_at < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}
