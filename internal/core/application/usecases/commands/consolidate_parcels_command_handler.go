package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/events"
	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// ConsolidateParcelsCommandHandler orchestrates the grouping of parcels into
// a consolidated shipment. Loads the members, allocates the daily tracking
// sequence, runs the domain grouping rules, and persists the aggregate, the
// updated members, and the history snapshot in one transaction.
type ConsolidateParcelsCommandHandler struct {
	uowFactory   ConsolidationUoWFactory
	consolidator services.Consolidator
	publisher    ports.EventPublisher
}

// NewConsolidateParcelsCommandHandler creates a handler for consolidation
// operations.
func NewConsolidateParcelsCommandHandler(
	uowFactory ConsolidationUoWFactory,
	publisher ports.EventPublisher,
) ConsolidateParcelsCommandHandler {
	return ConsolidateParcelsCommandHandler{
		uowFactory:   uowFactory,
		consolidator: services.NewConsolidator(),
		publisher:    publisher,
	}
}

// Handle processes the consolidation command.
//
// Grouping rule violations (mixed customers, already-grouped parcels, too few
// members) surface as consolidation.ErrConsolidationConflict before any write.
// On success a ConsolidationCreated event is published post-commit.
func (h ConsolidateParcelsCommandHandler) Handle(ctx context.Context, command ConsolidateParcelsCommand) error {
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

	members, err := parcelRepo.GetMany(ctx, command.ParcelIDs())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sequence, err := consolidationRepo.NextDailySequence(ctx, now)
	if err != nil {
		return err
	}

	trackingNumber := consolidation.NewTrackingNumber(now, sequence)

	aggregate, history, err := h.consolidator.Consolidate(
		kernel.NewUUID(), trackingNumber, command.CustomerID(), members, command.Operator(), now)
	if err != nil {
		return err
	}

	if err = consolidationRepo.Add(ctx, aggregate); err != nil {
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

	h.publisher.Publish(ctx, events.ConsolidationCreated{
		ConsolidationID: aggregate.ID(),
		TrackingNumber:  aggregate.TrackingNumber(),
		MemberIDs:       history.MemberIDs,
	})

	return nil
}
