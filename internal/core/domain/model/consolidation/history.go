package consolidation

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// HistoryAction identifies the kind of consolidation event recorded.
type HistoryAction string

const (
	// ActionConsolidated records the formation of a group.
	ActionConsolidated HistoryAction = "consolidated"
	// ActionUnconsolidated records the splitting of a group.
	ActionUnconsolidated HistoryAction = "unconsolidated"
	// ActionStatusSync records an aggregate status change derived from or
	// pushed to members.
	ActionStatusSync HistoryAction = "status_sync"
)

// History is the immutable record of a consolidate, unconsolidate, or
// status-sync event. Each record snapshots the member identifiers and the
// computed totals at that moment. Records are append-only.
type History struct {
	ID              kernel.UUID
	ConsolidationID kernel.UUID
	Action          HistoryAction
	MemberIDs       []kernel.UUID
	Totals          Totals
	Status          parcel.Status
	Operator        string
	Reason          string
	OccurredAt      time.Time
}

// NewHistory snapshots a consolidation event for the audit trail.
func NewHistory(
	consolidationID kernel.UUID,
	action HistoryAction,
	memberIDs []kernel.UUID,
	totals Totals,
	status parcel.Status,
	operator, reason string,
) *History {
	snapshot := make([]kernel.UUID, len(memberIDs))
	copy(snapshot, memberIDs)

	return &History{
		ID:              kernel.NewUUID(),
		ConsolidationID: consolidationID,
		Action:          action,
		MemberIDs:       snapshot,
		Totals:          totals,
		Status:          status,
		Operator:        operator,
		Reason:          reason,
		OccurredAt:      time.Now().UTC(),
	}
}
