package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetReadyParcelsQueryIsNotConstructed = errors.New(
		"GetReadyParcelsQuery must be created via NewGetReadyParcelsQuery constructor",
	)
)

// GetReadyParcelsQuery retrieves a customer's parcels eligible for
// distribution: in Ready status and not yet handed over.
type GetReadyParcelsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetReadyParcelsQuery creates a ready-parcel listing query for one
// customer.
func NewGetReadyParcelsQuery(customerID kernel.UUID) (GetReadyParcelsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetReadyParcelsQuery{}, err
	}

	return GetReadyParcelsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReadyParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyParcelsQueryIsNotConstructed)
}

// CustomerID returns the customer whose ready parcels are listed.
func (q GetReadyParcelsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetReadyParcelsQueryResponse is one distributable parcel row. TotalCost is
// recomputed from the fee columns in the query, never read from a stored
// total.
type GetReadyParcelsQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Weight         kernel.Weight
	TotalCost      kernel.Money
	Consolidated   bool
}
