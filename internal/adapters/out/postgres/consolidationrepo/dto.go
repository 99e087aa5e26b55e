// Package consolidationrepo provides data transfer objects and mapping
// functions for consolidated shipment persistence.
package consolidationrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ConsolidatedPackageDTO represents the database structure for persisting
// consolidated shipments. Totals are stored as derived snapshots; the source
// of truth stays with the member parcels and totals are recomputed whenever
// membership or fees change.
type ConsolidatedPackageDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber   string          `gorm:"uniqueIndex"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;index"`
	TotalWeight      decimal.Decimal `gorm:"type:numeric(12,3)"`
	TotalQuantity    int
	FreightFee       decimal.Decimal `gorm:"type:numeric(14,2)"`
	ClearanceFee     decimal.Decimal `gorm:"type:numeric(14,2)"`
	StorageFee       decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status           int             `gorm:"type:smallint"`
	IsActive         bool            `gorm:"index"`
	ConsolidatedAt   time.Time       `gorm:"index"`
	UnconsolidatedAt *time.Time
	Version          int
}

// TableName specifies the database table name for consolidated shipments.
func (ConsolidatedPackageDTO) TableName() string {
	return "consolidated_packages"
}

// fromDomain converts a consolidated shipment aggregate to its database
// representation.
func fromDomain(aggregate *consolidation.ConsolidatedPackage) ConsolidatedPackageDTO {
	totals := aggregate.Totals()
	return ConsolidatedPackageDTO{
		ID:               aggregate.ID().Bytes(),
		TrackingNumber:   aggregate.TrackingNumber(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		TotalWeight:      totals.Weight.Decimal(),
		TotalQuantity:    totals.Quantity,
		FreightFee:       totals.Fees.Freight.Decimal(),
		ClearanceFee:     totals.Fees.Clearance.Decimal(),
		StorageFee:       totals.Fees.Storage.Decimal(),
		DeliveryFee:      totals.Fees.Delivery.Decimal(),
		Status:           int(aggregate.Status()),
		IsActive:         aggregate.IsActive(),
		ConsolidatedAt:   aggregate.ConsolidatedAt(),
		UnconsolidatedAt: aggregate.UnconsolidatedAt(),
		Version:          aggregate.Version(),
	}
}

// toDomain converts a database DTO to a consolidated shipment aggregate.
func toDomain(dto ConsolidatedPackageDTO) (*consolidation.ConsolidatedPackage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return consolidation.RestoreConsolidatedPackage(
		id,
		dto.TrackingNumber,
		customerID,
		consolidation.Totals{
			Weight:   kernel.WeightFromDecimal(dto.TotalWeight),
			Quantity: dto.TotalQuantity,
			Fees: parcel.Fees{
				Freight:   kernel.MoneyFromDecimal(dto.FreightFee),
				Clearance: kernel.MoneyFromDecimal(dto.ClearanceFee),
				Storage:   kernel.MoneyFromDecimal(dto.StorageFee),
				Delivery:  kernel.MoneyFromDecimal(dto.DeliveryFee),
			},
		},
		parcel.Status(dto.Status),
		dto.IsActive,
		dto.ConsolidatedAt,
		dto.UnconsolidatedAt,
		dto.Version,
	)
}
