// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. Implements the repository pattern for the parcel domain
// aggregate, handling the conversion between domain entities and database
// representations.
package parcelrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. Fee components are stored individually; the total cost is never
// stored and is always recomputed from the components.
type ParcelDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index"`
	TrackingNumber  string          `gorm:"uniqueIndex"`
	Weight          decimal.Decimal `gorm:"type:numeric(12,3)"`
	DeclaredValue   decimal.Decimal `gorm:"type:numeric(14,2)"`
	FreightFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	ClearanceFee    decimal.Decimal `gorm:"type:numeric(14,2)"`
	StorageFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status          int             `gorm:"type:smallint;index"`
	DelayedFrom     *int            `gorm:"type:smallint"`
	ConsolidationID *uuid.UUID      `gorm:"type:uuid;index"`
	ConsolidatedAt  *time.Time
	DistributedAt   *time.Time
	Version         int
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database
// representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	var delayedFrom *int
	if from := aggregate.DelayedFrom(); from != nil {
		raw := int(*from)
		delayedFrom = &raw
	}

	var consolidationID *uuid.UUID
	if id := aggregate.ConsolidationID(); id != nil {
		raw := id.Bytes()
		consolidationID = &raw
	}

	fees := aggregate.Fees()
	return ParcelDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		TrackingNumber:  aggregate.TrackingNumber(),
		Weight:          aggregate.Weight().Decimal(),
		DeclaredValue:   aggregate.DeclaredValue().Decimal(),
		FreightFee:      fees.Freight.Decimal(),
		ClearanceFee:    fees.Clearance.Decimal(),
		StorageFee:      fees.Storage.Decimal(),
		DeliveryFee:     fees.Delivery.Decimal(),
		Status:          int(aggregate.Status()),
		DelayedFrom:     delayedFrom,
		ConsolidationID: consolidationID,
		ConsolidatedAt:  aggregate.ConsolidatedAt(),
		DistributedAt:   aggregate.DistributedAt(),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var delayedFrom *parcel.Status
	if dto.DelayedFrom != nil {
		from := parcel.Status(*dto.DelayedFrom)
		delayedFrom = &from
	}

	var consolidationID *kernel.UUID
	if dto.ConsolidationID != nil {
		cID, consErr := kernel.UUIDFromBytes((*dto.ConsolidationID)[:])
		if consErr != nil {
			return nil, consErr
		}
		consolidationID = &cID
	}

	return parcel.RestoreParcel(
		id,
		customerID,
		dto.TrackingNumber,
		kernel.WeightFromDecimal(dto.Weight),
		kernel.MoneyFromDecimal(dto.DeclaredValue),
		parcel.Fees{
			Freight:   kernel.MoneyFromDecimal(dto.FreightFee),
			Clearance: kernel.MoneyFromDecimal(dto.ClearanceFee),
			Storage:   kernel.MoneyFromDecimal(dto.StorageFee),
			Delivery:  kernel.MoneyFromDecimal(dto.DeliveryFee),
		},
		parcel.Status(dto.Status),
		delayedFrom,
		consolidationID,
		dto.ConsolidatedAt,
		dto.DistributedAt,
		dto.Version,
	)
}
