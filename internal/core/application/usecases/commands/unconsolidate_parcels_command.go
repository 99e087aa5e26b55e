package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	ErrUnconsolidateParcelsCommandIsNotConstructed = errors.New(
		"UnconsolidateParcelsCommand must be created via NewUnconsolidateParcelsCommand constructor",
	)
)

// UnconsolidateParcelsCommand splits a consolidated shipment back into
// independent parcels.
type UnconsolidateParcelsCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	operator        string
	reason          string

	guard guard.ConstructorGuard
}

// NewUnconsolidateParcelsCommand creates a validated split request.
func NewUnconsolidateParcelsCommand(
	consolidationID kernel.UUID,
	operator, reason string,
) (UnconsolidateParcelsCommand, error) {
	cmd := UnconsolidateParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsolidationID(consolidationID),
		cmd.setOperator(operator),
	); err != nil {
		return UnconsolidateParcelsCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnconsolidateParcelsCommand) Validate() error {
	return c.guard.Validate(ErrUnconsolidateParcelsCommandIsNotConstructed)
}

// ConsolidationID returns the identifier of the consolidation to split.
func (c UnconsolidateParcelsCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// Operator returns who requested the split, for the audit trail.
func (c UnconsolidateParcelsCommand) Operator() string {
	return c.operator
}

// Reason returns the optional free-text reason.
func (c UnconsolidateParcelsCommand) Reason() string {
	return c.reason
}

func (c *UnconsolidateParcelsCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}
	c.consolidationID = consolidationID
	return nil
}

func (c *UnconsolidateParcelsCommand) setOperator(operator string) error {
	if operator == "" {
		return parcel.ErrActorIsRequired
	}
	c.operator = operator
	return nil
}
