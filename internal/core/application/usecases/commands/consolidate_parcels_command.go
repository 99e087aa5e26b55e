package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrConsolidateParcelsCommandIsNotConstructed = errors.New(
		"ConsolidateParcelsCommand must be created via NewConsolidateParcelsCommand constructor",
	)
)

// ConsolidateParcelsCommand groups a customer's parcels into one consolidated
// shipment.
type ConsolidateParcelsCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	parcelIDs  []kernel.UUID
	operator   string

	guard guard.ConstructorGuard
}

// NewConsolidateParcelsCommand creates a validated consolidation request.
// Requires at least the policy minimum number of parcels.
func NewConsolidateParcelsCommand(
	customerID kernel.UUID,
	parcelIDs []kernel.UUID,
	operator string,
) (ConsolidateParcelsCommand, error) {
	cmd := ConsolidateParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setParcelIDs(parcelIDs),
		cmd.setOperator(operator),
	); err != nil {
		return ConsolidateParcelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConsolidateParcelsCommand) Validate() error {
	return c.guard.Validate(ErrConsolidateParcelsCommandIsNotConstructed)
}

// CustomerID returns the owning customer's identifier.
func (c ConsolidateParcelsCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ParcelIDs returns the identifiers of the parcels to group.
func (c ConsolidateParcelsCommand) ParcelIDs() []kernel.UUID {
	return c.parcelIDs
}

// Operator returns who requested the grouping, for the audit trail.
func (c ConsolidateParcelsCommand) Operator() string {
	return c.operator
}

func (c *ConsolidateParcelsCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *ConsolidateParcelsCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) < services.MinConsolidationSize {
		return errs.NewValueIsInvalidError("parcelIDs")
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.parcelIDs = parcelIDs
	return nil
}

func (c *ConsolidateParcelsCommand) setOperator(operator string) error {
	if operator == "" {
		return parcel.ErrActorIsRequired
	}
	c.operator = operator
	return nil
}
