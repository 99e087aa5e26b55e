package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
		"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
	)
)

// ChangeParcelStatusCommand represents an operator's request to move one
// parcel to a new lifecycle status.
//
// Example:
//
//	cmd, err := NewChangeParcelStatusCommand(parcelID, parcel.Shipped, "ops@depot", "container loaded")
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type ChangeParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	newStatus parcel.Status
	actor     string
	reason    string

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand creates a validated status-change request.
// The actor is mandatory because every mutation is audited.
func NewChangeParcelStatusCommand(
	parcelID kernel.UUID,
	newStatus parcel.Status,
	actor, reason string,
) (ChangeParcelStatusCommand, error) {
	cmd := ChangeParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setNewStatus(newStatus),
		cmd.setActor(actor),
	); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

// ParcelID returns the target parcel's identifier.
func (c ChangeParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// NewStatus returns the requested status.
func (c ChangeParcelStatusCommand) NewStatus() parcel.Status {
	return c.newStatus
}

// Actor returns who requested the change, for the audit trail.
func (c ChangeParcelStatusCommand) Actor() string {
	return c.actor
}

// Reason returns the optional free-text reason.
func (c ChangeParcelStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func (c *ChangeParcelStatusCommand) setNewStatus(newStatus parcel.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *ChangeParcelStatusCommand) setActor(actor string) error {
	if actor == "" {
		return parcel.ErrActorIsRequired
	}
	c.actor = actor
	return nil
}
