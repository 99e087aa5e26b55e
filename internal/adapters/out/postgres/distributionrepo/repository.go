package distributionrepo

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// GormDistributionRepository implements DistributionRepository using GORM.
type GormDistributionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDistributionRepository creates a new GORM distribution repository.
func NewGormDistributionRepository(db *gorm.DB, tracker aggregateTracker) *GormDistributionRepository {
	return &GormDistributionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a settlement header with its lines. A receipt-number collision
// surfaces as distribution.ErrDuplicateReceiptNumber for the caller to retry
// with a fresh number.
func (r *GormDistributionRepository) Add(ctx context.Context, aggregate *distribution.PackageDistribution) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		if isReceiptCollision(err) {
			return distribution.ErrDuplicateReceiptNumber
		}
		return err
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the dispute annotation and payment-status correction.
// Everything else on a settlement is immutable once created.
func (r *GormDistributionRepository) Update(ctx context.Context, aggregate *distribution.PackageDistribution) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DistributionDTO{}).
		Where("id = ?", header.ID).
		Select("payment_status", "disputed", "dispute_reason").
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("distribution", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a settlement with its lines.
func (r *GormDistributionRepository) Get(ctx context.Context, id kernel.UUID) (*distribution.PackageDistribution, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var header DistributionDTO
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("distribution", id.String())
		}
		return nil, err
	}

	var items []DistributionItemDTO
	if err := r.db.WithContext(ctx).Find(&items, "distribution_id = ?", id.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomain(header, items)
}

// isReceiptCollision reports whether the error is a unique violation on the
// receipt-number index.
func isReceiptCollision(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
