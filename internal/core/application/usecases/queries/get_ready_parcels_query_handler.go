package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// GetReadyParcelsQueryHandler lists the parcels a customer can collect.
//
// Example:
//
//	handler := NewGetReadyParcelsQueryHandler(db)
//	query, _ := NewGetReadyParcelsQuery(customerID)
//
//	ready, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list ready parcels: %w", err)
//	}
//	fmt.Printf("%d parcels awaiting pickup\n", len(ready))
type GetReadyParcelsQueryHandler struct {
	db *gorm.DB
}

// NewGetReadyParcelsQueryHandler creates a handler for ready-parcel listings.
func NewGetReadyParcelsQueryHandler(db *gorm.DB) GetReadyParcelsQueryHandler {
	return GetReadyParcelsQueryHandler{db: db}
}

// Handle executes the listing. Only Ready, never-distributed parcels qualify;
// the per-parcel total is summed from the fee columns.
func (h GetReadyParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetReadyParcelsQuery,
) ([]GetReadyParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetReadyParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			weight,
			freight_fee + clearance_fee + storage_fee + delivery_fee AS total_cost,
			consolidation_id IS NOT NULL AS consolidated
		FROM parcels
		WHERE customer_id = ?
		  AND status = ?
		  AND distributed_at IS NULL
		ORDER BY tracking_number
	`, query.CustomerID().String(), parcel.Ready).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetReadyParcelsQueryResponse
		var id uuid.UUID
		var weight, totalCost decimal.Decimal

		err = rows.Scan(
			&id,
			&row.TrackingNumber,
			&weight,
			&totalCost,
			&row.Consolidated,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = parcelID
		row.Weight = kernel.WeightFromDecimal(weight)
		row.TotalCost = kernel.MoneyFromDecimal(totalCost)
		parcels = append(parcels, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
