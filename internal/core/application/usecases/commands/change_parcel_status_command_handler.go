package commands

import (
	"context"

	"parcels/internal/core/domain/events"
	"parcels/internal/core/ports"
)

// ChangeParcelStatusCommandHandler orchestrates operator-driven status
// transitions for a single parcel. Consults the manifest lock before any
// mutation, applies the transition through the aggregate, and persists the
// parcel together with its audit row in one transaction.
//
// Example:
//
//	handler := NewChangeParcelStatusCommandHandler(uowFactory, lockChecker, publisher)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, parcel.ErrInvalidTransition):
//	    log.Println("Transition not permitted")
//	case errors.Is(err, ports.ErrManifestLocked):
//	    log.Println("Parcel is on a locked manifest")
//	case err != nil:
//	    log.Printf("Status change failed: %v", err)
//	}
type ChangeParcelStatusCommandHandler struct {
	uowFactory  StatusUoWFactory
	lockChecker ports.ManifestLockChecker
	publisher   ports.EventPublisher
}

// NewChangeParcelStatusCommandHandler creates a handler for status changes.
func NewChangeParcelStatusCommandHandler(
	uowFactory StatusUoWFactory,
	lockChecker ports.ManifestLockChecker,
	publisher ports.EventPublisher,
) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory:  uowFactory,
		lockChecker: lockChecker,
		publisher:   publisher,
	}
}

// Handle processes the status-change command.
//
// A parcel on a locked manifest is rejected with ports.ErrManifestLocked
// before any state is touched. A request for the current status is an
// idempotent no-op: nothing is written and no event is published. On success
// the parcel and its status-change audit row commit atomically and a
// PackageStatusChanged event is published post-commit.
func (h ChangeParcelStatusCommandHandler) Handle(ctx context.Context, command ChangeParcelStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	locked, err := h.lockChecker.IsLocked(ctx, command.ParcelID())
	if err != nil {
		return err
	}
	if locked {
		return ports.ErrManifestLocked
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	auditRepo := uow.AuditRepository()

	aggregate, err := parcelRepo.Get(ctx, command.ParcelID())
	if err != nil {
		return err
	}

	change, err := aggregate.ChangeStatus(command.NewStatus(), command.Actor(), command.Reason())
	if err != nil {
		return err
	}
	if change == nil {
		return nil
	}

	if err = parcelRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = auditRepo.AppendStatusChange(ctx, change); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.PackageStatusChanged{
		ParcelID:  change.ParcelID,
		OldStatus: change.OldStatus,
		NewStatus: change.NewStatus,
		Actor:     change.Actor,
	})

	return nil
}
