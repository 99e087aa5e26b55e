// Package auditrepo provides append-only persistence for status-change and
// consolidation-history audit rows.
package auditrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// StatusChangeDTO represents one parcel status-change audit row.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID `gorm:"type:uuid;index"`
	OldStatus  int       `gorm:"type:smallint"`
	NewStatus  int       `gorm:"type:smallint"`
	Actor      string
	Reason     string
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for status-change rows.
func (StatusChangeDTO) TableName() string {
	return "status_history"
}

// ConsolidationHistoryDTO represents one consolidation event snapshot,
// including the member identifiers at that moment.
type ConsolidationHistoryDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ConsolidationID uuid.UUID      `gorm:"type:uuid;index"`
	Action          string         `gorm:"type:varchar(20)"`
	MemberIDs       pq.StringArray `gorm:"type:text[]"`
	TotalWeight     decimal.Decimal `gorm:"type:numeric(12,3)"`
	TotalQuantity   int
	FreightFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	ClearanceFee    decimal.Decimal `gorm:"type:numeric(14,2)"`
	StorageFee      decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status          int             `gorm:"type:smallint"`
	Operator        string
	Reason          string
	OccurredAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for consolidation history rows.
func (ConsolidationHistoryDTO) TableName() string {
	return "consolidation_history"
}

// statusChangeFromDomain converts a status-change record to its database
// representation.
func statusChangeFromDomain(change *parcel.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         change.ID.Bytes(),
		ParcelID:   change.ParcelID.Bytes(),
		OldStatus:  int(change.OldStatus),
		NewStatus:  int(change.NewStatus),
		Actor:      change.Actor,
		Reason:     change.Reason,
		OccurredAt: change.OccurredAt,
	}
}

// historyFromDomain converts a consolidation history record to its database
// representation.
func historyFromDomain(history *consolidation.History) ConsolidationHistoryDTO {
	memberIDs := make(pq.StringArray, 0, len(history.MemberIDs))
	for _, id := range history.MemberIDs {
		memberIDs = append(memberIDs, id.String())
	}

	return ConsolidationHistoryDTO{
		ID:              history.ID.Bytes(),
		ConsolidationID: history.ConsolidationID.Bytes(),
		Action:          string(history.Action),
		MemberIDs:       memberIDs,
		TotalWeight:     history.Totals.Weight.Decimal(),
		TotalQuantity:   history.Totals.Quantity,
		FreightFee:      history.Totals.Fees.Freight.Decimal(),
		ClearanceFee:    history.Totals.Fees.Clearance.Decimal(),
		StorageFee:      history.Totals.Fees.Storage.Decimal(),
		DeliveryFee:     history.Totals.Fees.Delivery.Decimal(),
		Status:          int(history.Status),
		Operator:        history.Operator,
		Reason:          history.Reason,
		OccurredAt:      history.OccurredAt,
	}
}

// historyToDomain converts a database DTO to a consolidation history record.
func historyToDomain(dto ConsolidationHistoryDTO) (*consolidation.History, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	consolidationID, err := kernel.UUIDFromBytes(dto.ConsolidationID[:])
	if err != nil {
		return nil, err
	}

	memberIDs := make([]kernel.UUID, 0, len(dto.MemberIDs))
	for _, raw := range dto.MemberIDs {
		memberID, memberErr := kernel.UUIDFromString(raw)
		if memberErr != nil {
			return nil, memberErr
		}
		memberIDs = append(memberIDs, memberID)
	}

	return &consolidation.History{
		ID:              id,
		ConsolidationID: consolidationID,
		Action:          consolidation.HistoryAction(dto.Action),
		MemberIDs:       memberIDs,
		Totals: consolidation.Totals{
			Weight:   kernel.WeightFromDecimal(dto.TotalWeight),
			Quantity: dto.TotalQuantity,
			Fees: parcel.Fees{
				Freight:   kernel.MoneyFromDecimal(dto.FreightFee),
				Clearance: kernel.MoneyFromDecimal(dto.ClearanceFee),
				Storage:   kernel.MoneyFromDecimal(dto.StorageFee),
				Delivery:  kernel.MoneyFromDecimal(dto.DeliveryFee),
			},
		},
		Status:     parcel.Status(dto.Status),
		Operator:   dto.Operator,
		Reason:     dto.Reason,
		OccurredAt: dto.OccurredAt,
	}, nil
}
