// Package distributionrepo provides data transfer objects and mapping
// functions for settlement receipt persistence.
package distributionrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parcels/internal/core/domain/model/distribution"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// DistributionDTO represents the database structure for settlement headers.
// The unique index on receipt_number is the collision detector for generated
// receipt numbers.
type DistributionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptNumber   string    `gorm:"uniqueIndex"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index"`
	Operator        string
	DistributedAt   time.Time       `gorm:"index"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	AmountCollected decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreditApplied   decimal.Decimal `gorm:"type:numeric(14,2)"`
	BalanceApplied  decimal.Decimal `gorm:"type:numeric(14,2)"`
	WriteOffAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	WriteOffReason  string
	PaymentStatus   string `gorm:"type:varchar(10)"`
	Disputed        bool
	DisputeReason   string
}

// TableName specifies the database table name for settlement headers.
func (DistributionDTO) TableName() string {
	return "distributions"
}

// DistributionItemDTO represents one settlement line with the distributed
// parcel's cost breakdown.
type DistributionItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	DistributionID uuid.UUID `gorm:"type:uuid;index"`
	ParcelID       uuid.UUID `gorm:"type:uuid;index"`
	TrackingNumber string
	FreightFee     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ClearanceFee   decimal.Decimal `gorm:"type:numeric(14,2)"`
	StorageFee     decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee    decimal.Decimal `gorm:"type:numeric(14,2)"`
	TotalCost      decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for settlement lines.
func (DistributionItemDTO) TableName() string {
	return "distribution_items"
}

// fromDomain converts a settlement aggregate to its header and line DTOs.
func fromDomain(aggregate *distribution.PackageDistribution) (DistributionDTO, []DistributionItemDTO) {
	header := DistributionDTO{
		ID:              aggregate.ID().Bytes(),
		ReceiptNumber:   aggregate.ReceiptNumber(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		Operator:        aggregate.Operator(),
		DistributedAt:   aggregate.DistributedAt(),
		TotalAmount:     aggregate.TotalAmount().Decimal(),
		AmountCollected: aggregate.AmountCollected().Decimal(),
		CreditApplied:   aggregate.CreditApplied().Decimal(),
		BalanceApplied:  aggregate.BalanceApplied().Decimal(),
		WriteOffAmount:  aggregate.WriteOffAmount().Decimal(),
		WriteOffReason:  aggregate.WriteOffReason(),
		PaymentStatus:   string(aggregate.PaymentStatus()),
		Disputed:        aggregate.Disputed(),
		DisputeReason:   aggregate.DisputeReason(),
	}

	items := make([]DistributionItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, DistributionItemDTO{
			ID:             item.ID.Bytes(),
			DistributionID: item.DistributionID.Bytes(),
			ParcelID:       item.ParcelID.Bytes(),
			TrackingNumber: item.TrackingNumber,
			FreightFee:     item.Fees.Freight.Decimal(),
			ClearanceFee:   item.Fees.Clearance.Decimal(),
			StorageFee:     item.Fees.Storage.Decimal(),
			DeliveryFee:    item.Fees.Delivery.Decimal(),
			TotalCost:      item.TotalCost.Decimal(),
		})
	}

	return header, items
}

// toDomain converts header and line DTOs to a settlement aggregate.
func toDomain(header DistributionDTO, itemDTOs []DistributionItemDTO) (*distribution.PackageDistribution, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(header.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]distribution.Item, 0, len(itemDTOs))
	for _, dto := range itemDTOs {
		itemID, itemErr := kernel.UUIDFromBytes(dto.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		distributionID, itemErr := kernel.UUIDFromBytes(dto.DistributionID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		parcelID, itemErr := kernel.UUIDFromBytes(dto.ParcelID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, distribution.Item{
			ID:             itemID,
			DistributionID: distributionID,
			ParcelID:       parcelID,
			TrackingNumber: dto.TrackingNumber,
			Fees: parcel.Fees{
				Freight:   kernel.MoneyFromDecimal(dto.FreightFee),
				Clearance: kernel.MoneyFromDecimal(dto.ClearanceFee),
				Storage:   kernel.MoneyFromDecimal(dto.StorageFee),
				Delivery:  kernel.MoneyFromDecimal(dto.DeliveryFee),
			},
			TotalCost: kernel.MoneyFromDecimal(dto.TotalCost),
		})
	}

	return distribution.RestorePackageDistribution(
		id,
		header.ReceiptNumber,
		customerID,
		header.Operator,
		header.DistributedAt,
		kernel.MoneyFromDecimal(header.TotalAmount),
		kernel.MoneyFromDecimal(header.AmountCollected),
		kernel.MoneyFromDecimal(header.CreditApplied),
		kernel.MoneyFromDecimal(header.BalanceApplied),
		kernel.MoneyFromDecimal(header.WriteOffAmount),
		header.WriteOffReason,
		distribution.PaymentStatus(header.PaymentStatus),
		header.Disputed,
		header.DisputeReason,
		items,
	)
}
