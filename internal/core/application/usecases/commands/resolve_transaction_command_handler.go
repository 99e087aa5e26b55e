package commands

import (
	"context"
	"time"
)

// ResolveTransactionCommandHandler closes open reviews on ledger postings.
type ResolveTransactionCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewResolveTransactionCommandHandler creates a handler for review
// resolution.
func NewResolveTransactionCommandHandler(uowFactory LedgerUoWFactory) ResolveTransactionCommandHandler {
	return ResolveTransactionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command. Resolving an unflagged posting
// fails with ledger.ErrTransactionNotFlagged, resolving twice with
// ledger.ErrTransactionAlreadyResolved.
func (h ResolveTransactionCommandHandler) Handle(ctx context.Context, command ResolveTransactionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()

	tx, err := ledgerRepo.GetTransaction(ctx, command.TransactionID())
	if err != nil {
		return err
	}

	if err = tx.Resolve(command.AdminResponse(), time.Now().UTC()); err != nil {
		return err
	}

	if err = ledgerRepo.UpdateTransactionReview(ctx, tx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
