package commands

import (
	"context"

	"parcels/internal/core/domain/events"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// ChangeConsolidationStatusCommandHandler orchestrates status transitions for
// a consolidated shipment. The aggregate and every member move together: the
// members advance through the consolidation bypass, each with its own audit
// row, and the sync is snapshotted as a history record.
type ChangeConsolidationStatusCommandHandler struct {
	uowFactory   ConsolidationUoWFactory
	lockChecker  ports.ManifestLockChecker
	consolidator services.Consolidator
	publisher    ports.EventPublisher
}

// NewChangeConsolidationStatusCommandHandler creates a handler for group
// status changes.
func NewChangeConsolidationStatusCommandHandler(
	uowFactory ConsolidationUoWFactory,
	lockChecker ports.ManifestLockChecker,
	publisher ports.EventPublisher,
) ChangeConsolidationStatusCommandHandler {
	return ChangeConsolidationStatusCommandHandler{
		uowFactory:   uowFactory,
		lockChecker:  lockChecker,
		consolidator: services.NewConsolidator(),
		publisher:    publisher,
	}
}

// Handle processes the group status-change command.
//
// A member on a locked manifest rejects the whole group with
// ports.ErrManifestLocked before any state is touched. A request for the
// aggregate's current status is an idempotent no-op. On success the
// aggregate, its members, the per-member audit rows, and the status-sync
// history record commit atomically; one PackageStatusChanged event per moved
// member is published post-commit.
func (h ChangeConsolidationStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeConsolidationStatusCommand,
) error {
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

	for _, member := range members {
		locked, lockErr := h.lockChecker.IsLocked(ctx, member.ID())
		if lockErr != nil {
			return lockErr
		}
		if locked {
			return ports.ErrManifestLocked
		}
	}

	if aggregate.Status() == command.NewStatus() {
		return nil
	}

	changes, history, err := h.consolidator.PushStatusToMembers(
		aggregate, members, command.NewStatus(), command.Operator(), command.Reason())
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

	for _, change := range changes {
		if err = auditRepo.AppendStatusChange(ctx, change); err != nil {
			return err
		}
	}

	if err = auditRepo.AppendConsolidationHistory(ctx, history); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	statusEvents := make([]events.DomainEvent, 0, len(changes))
	for _, change := range changes {
		statusEvents = append(statusEvents, events.PackageStatusChanged{
			ParcelID:  change.ParcelID,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
			Actor:     change.Actor,
		})
	}
	h.publisher.Publish(ctx, statusEvents...)

	return nil
}
