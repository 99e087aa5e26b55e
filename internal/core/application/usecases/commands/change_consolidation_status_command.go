package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	ErrChangeConsolidationStatusCommandIsNotConstructed = errors.New(
		"ChangeConsolidationStatusCommand must be created via NewChangeConsolidationStatusCommand constructor",
	)
)

// ChangeConsolidationStatusCommand represents an operator's request to move a
// consolidated shipment, and with it every member parcel, to a new lifecycle
// status. Members advance through the consolidation bypass; the direct
// per-parcel route rejects grouped parcels.
type ChangeConsolidationStatusCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	newStatus       parcel.Status
	operator        string
	reason          string

	guard guard.ConstructorGuard
}

// NewChangeConsolidationStatusCommand creates a validated group status-change
// request. The operator is mandatory because every mutation is audited.
func NewChangeConsolidationStatusCommand(
	consolidationID kernel.UUID,
	newStatus parcel.Status,
	operator, reason string,
) (ChangeConsolidationStatusCommand, error) {
	cmd := ChangeConsolidationStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setNewStatus(newStatus),
		cmd.setOperator(operator),
	); err != nil {
		return ChangeConsolidationStatusCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeConsolidationStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeConsolidationStatusCommandIsNotConstructed)
}

// ConsolidationID returns the target consolidation's identifier.
func (c ChangeConsolidationStatusCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// NewStatus returns the requested status.
func (c ChangeConsolidationStatusCommand) NewStatus() parcel.Status {
	return c.newStatus
}

// Operator returns who requested the change, for the audit trail.
func (c ChangeConsolidationStatusCommand) Operator() string {
	return c.operator
}

// Reason returns the optional free-text reason.
func (c ChangeConsolidationStatusCommand) Reason() string {
	return c.reason
}

func (c *ChangeConsolidationStatusCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}
	c.consolidationID = consolidationID
	return nil
}

func (c *ChangeConsolidationStatusCommand) setNewStatus(newStatus parcel.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *ChangeConsolidationStatusCommand) setOperator(operator string) error {
	if operator == "" {
		return parcel.ErrActorIsRequired
	}
	c.operator = operator
	return nil
}
