package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/parcel"
)

// AuditRepository is the append-only recorder for every mutation audit row.
// Rows are consumed by external reporting and compliance tooling; the core
// only appends and, per retention policy, purges.
type AuditRepository interface {
	// AppendStatusChange appends one parcel status-change audit row.
	AppendStatusChange(ctx context.Context, change *parcel.StatusChange) error

	// AppendConsolidationHistory appends one consolidation event snapshot.
	AppendConsolidationHistory(ctx context.Context, history *consolidation.History) error

	// PurgeStatusChangesBefore deletes status-change rows older than the
	// cutoff and returns how many were removed. Used by the retention job.
	PurgeStatusChangesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
