package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrFlagTransactionCommandIsNotConstructed = errors.New(
		"FlagTransactionCommand must be created via NewFlagTransactionCommand constructor",
	)
)

// FlagTransactionCommand marks a ledger posting for manual review.
type FlagTransactionCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	reason        string

	guard guard.ConstructorGuard
}

// NewFlagTransactionCommand creates a validated review-flag request.
func NewFlagTransactionCommand(transactionID kernel.UUID, reason string) (FlagTransactionCommand, error) {
	cmd := FlagTransactionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setReason(reason),
	); err != nil {
		return FlagTransactionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FlagTransactionCommand) Validate() error {
	return c.guard.Validate(ErrFlagTransactionCommandIsNotConstructed)
}

// TransactionID returns the posting to flag.
func (c FlagTransactionCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

// Reason returns why the posting needs review.
func (c FlagTransactionCommand) Reason() string {
	return c.reason
}

func (c *FlagTransactionCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}
	c.transactionID = transactionID
	return nil
}

func (c *FlagTransactionCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
