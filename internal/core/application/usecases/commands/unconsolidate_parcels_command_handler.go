package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/events"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// UnconsolidateParcelsCommandHandler orchestrates the splitting of a
// consolidated shipment. Members keep their current statuses and return to
// being independent parcels; the consolidation record is deactivated and
// preserved.
type UnconsolidateParcelsCommandHandler struct {
	uowFactory   ConsolidationUoWFactory
	consolidator services.Consolidator
	publisher    ports.EventPublisher
}

// NewUnconsolidateParcelsCommandHandler creates a handler for split
// operations.
func NewUnconsolidateParcelsCommandHandler(
	uowFactory ConsolidationUoWFactory,
	publisher ports.EventPublisher,
) UnconsolidateParcelsCommandHandler {
	return UnconsolidateParcelsCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewConsolidator(),
		publisher:    publisher,
	}
}

// Handle processes the split command.
//
// A split is rejected with consolidation.ErrConsolidationConflict when any
// member is already Delivered, and with consolidation.ErrConsolidationInactive
// when the group was already split. On success a ConsolidationSplit event is
// published post-commit.
func (h UnconsolidateParcelsCommandHandler) Handle(ctx context.Context, command UnconsolidateParcelsCommand) error {
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
	auditRepo := uow.AuditRepository()

	aggregate, err := consolidationRepo.Get(ctx, command.ConsolidationID())
	if err != nil {
		return err
	}

	members, err := parcelRepo.GetByConsolidationID(ctx, command.ConsolidationID())
	if err != nil {
		return err
	}

	history, err := h.consolidator.Unconsolidate(
		aggregate, members, command.Operator(), command.Reason(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = consolidationRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	for _, member := range members {
		if err = parcelRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err = auditRepo.AppendConsolidationHistory(ctx, history); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.ConsolidationSplit{
		ConsolidationID: aggregate.ID(),
		MemberIDs:       history.MemberIDs,
	})

	return nil
}
