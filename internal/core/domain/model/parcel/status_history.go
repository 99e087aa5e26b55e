package parcel

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// StatusChange is the immutable audit record appended for every parcel status
// mutation. Records are created by the aggregate when a transition succeeds
// and persisted by the audit recorder; they are never updated or deleted.
type StatusChange struct {
	ID         kernel.UUID
	ParcelID   kernel.UUID
	OldStatus  Status
	NewStatus  Status
	Actor      string
	Reason     string
	OccurredAt time.Time
}

// NewStatusChange captures a completed status mutation for the audit trail.
func NewStatusChange(parcelID kernel.UUID, oldStatus, newStatus Status, actor, reason string) *StatusChange {
	return &StatusChange{
		ID:         kernel.NewUUID(),
		ParcelID:   parcelID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Actor:      actor,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
