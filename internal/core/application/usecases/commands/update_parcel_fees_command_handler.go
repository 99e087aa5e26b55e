package commands

import (
	"context"

	"parcels/internal/core/domain/services"
)

// UpdateParcelFeesCommandHandler applies a fee reassessment to one parcel.
// The parcel's consolidation, when it has one, gets its totals re-summed
// through the consolidation manager within the same transaction, so the
// aggregate never quotes stale fee totals.
type UpdateParcelFeesCommandHandler struct {
	uowFactory   ParcelFeesUoWFactory
	consolidator services.Consolidator
}

// NewUpdateParcelFeesCommandHandler creates a handler for fee updates.
func NewUpdateParcelFeesCommandHandler(uowFactory ParcelFeesUoWFactory) UpdateParcelFeesCommandHandler {
	return UpdateParcelFeesCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewConsolidator(),
	}
}

// Handle processes the fee-update command.
func (h UpdateParcelFeesCommandHandler) Handle(ctx context.Context, command UpdateParcelFeesCommand) error {
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

	parcelRepo := uow.ParcelRepository()
	consolidationRepo := uow.ConsolidationRepository()

	aggregate, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	if err = aggregate.SetFees(command.Fees()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.IsConsolidated() {
		consolidationID := *aggregate.ConsolidationID()

		group, groupErr := consolidationRepo.Get(ctx, consolidationID)
		if groupErr != nil {
			return groupErr
		}

		members, membersErr := parcelRepo.GetByConsolidationID(ctx, consolidationID)
		if membersErr != nil {
			return membersErr
		}

		if err = h.consolidator.RecalculateTotals(group, members); err != nil {
			return err
		}

		if err = consolidationRepo.Update(ctx, group); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
