package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	ErrResolveTransactionCommandIsNotConstructed = errors.New(
		"ResolveTransactionCommand must be created via NewResolveTransactionCommand constructor",
	)
)

// ResolveTransactionCommand closes an open review on a ledger posting.
type ResolveTransactionCommand struct { //nolint:recvcheck //using for validation
	transactionID kernel.UUID
	adminResponse string

	guard guard.ConstructorGuard
}

// NewResolveTransactionCommand creates a validated review-resolution request.
func NewResolveTransactionCommand(transactionID kernel.UUID, adminResponse string) (ResolveTransactionCommand, error) {
	cmd := ResolveTransactionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTransactionID(transactionID),
		cmd.setAdminResponse(adminResponse),
	); err != nil {
		return ResolveTransactionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveTransactionCommand) Validate() error {
	return c.guard.Validate(ErrResolveTransactionCommandIsNotConstructed)
}

// TransactionID returns the posting whose review is resolved.
func (c ResolveTransactionCommand) TransactionID() kernel.UUID {
	return c.transactionID
}

// AdminResponse returns the resolution note.
func (c ResolveTransactionCommand) AdminResponse() string {
	return c.adminResponse
}

func (c *ResolveTransactionCommand) setTransactionID(transactionID kernel.UUID) error {
	if err := transactionID.Validate(); err != nil {
		return err
	}
	c.transactionID = transactionID
	return nil
}

func (c *ResolveTransactionCommand) setAdminResponse(adminResponse string) error {
	if adminResponse == "" {
		return errs.NewValueIsRequiredError("adminResponse")
	}
	c.adminResponse = adminResponse
	return nil
}
