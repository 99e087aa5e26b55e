package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	ErrUpdateParcelFeesCommandIsNotConstructed = errors.New(
		"UpdateParcelFeesCommand must be created via NewUpdateParcelFeesCommand constructor",
	)
)

// UpdateParcelFeesCommand replaces a parcel's fee components, for example
// after a clearance reassessment. When the parcel belongs to an active
// consolidation the group's totals are recalculated in the same transaction.
type UpdateParcelFeesCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	fees     parcel.Fees

	guard guard.ConstructorGuard
}

// NewUpdateParcelFeesCommand creates a validated fee-update request.
func NewUpdateParcelFeesCommand(parcelID kernel.UUID, fees parcel.Fees) (UpdateParcelFeesCommand, error) {
	cmd := UpdateParcelFeesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setFees(fees),
	); err != nil {
		return UpdateParcelFeesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelFeesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelFeesCommandIsNotConstructed)
}

// ParcelID returns the target parcel's identifier.
func (c UpdateParcelFeesCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Fees returns the replacement fee components.
func (c UpdateParcelFeesCommand) Fees() parcel.Fees {
	return c.fees
}

func (c *UpdateParcelFeesCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelFeesCommand) setFees(fees parcel.Fees) error {
	if err := fees.Validate(); err != nil {
		return err
	}
	c.fees = fees
	return nil
}
