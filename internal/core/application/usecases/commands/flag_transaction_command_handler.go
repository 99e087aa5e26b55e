package commands

import (
	"context"
)

// FlagTransactionCommandHandler marks ledger postings for manual review.
// Used both by operators and by the reconciliation job when it finds a
// write-off above the configured threshold.
type FlagTransactionCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewFlagTransactionCommandHandler creates a handler for review flagging.
func NewFlagTransactionCommandHandler(uowFactory LedgerUoWFactory) FlagTransactionCommandHandler {
	return FlagTransactionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the flag command. Flagging an already-flagged posting
// fails with ledger.ErrTransactionAlreadyFlagged; the posting amounts stay
// untouched either way.
func (h FlagTransactionCommandHandler) Handle(ctx context.Context, command FlagTransactionCommand) error {
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

	if err = tx.FlagForReview(command.Reason()); err != nil {
		return err
	}

	if err = ledgerRepo.UpdateTransactionReview(ctx, tx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
