package services

import (
	"fmt"
	"time"

	"parcels/internal/core/domain/model/consolidation"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// MinConsolidationSize is the policy minimum number of parcels in a group.
const MinConsolidationSize = 2

// Consolidator is the domain service that groups and ungroups parcels under
// a consolidated shipment and keeps the aggregate's totals and status in
// sync with its members.
//
// Key responsibilities:
//   - enforcing grouping preconditions (one customer, no double-grouping,
//     policy minimum size)
//   - recomputing aggregate totals as the sum over current members
//   - deriving the aggregate status from member priorities and pushing an
//     aggregate status down to members through the designed bypass
//   - snapshotting every grouping event as an append-only History record
type Consolidator struct{}

// NewConsolidator creates a new Consolidator instance.
func NewConsolidator() Consolidator {
	return Consolidator{}
}

// Consolidate groups the given parcels into a new consolidated shipment.
//
// Preconditions, all checked before any mutation:
//   - at least MinConsolidationSize parcels
//   - every parcel belongs to customerID
//   - no parcel already belongs to an active consolidation
//   - no parcel was already distributed
//
// On success every member is linked to the new aggregate, totals are the sum
// over members, the aggregate status follows the priority rule, and a
// consolidated History snapshot is returned alongside the aggregate.
func (c Consolidator) Consolidate(
	id kernel.UUID,
	trackingNumber string,
	customerID kernel.UUID,
	members []*parcel.Parcel,
	operator string,
	at time.Time,
) (*consolidation.ConsolidatedPackage, *consolidation.History, error) {
	if len(members) < MinConsolidationSize {
		return nil, nil, fmt.Errorf("%w: %d parcels given, policy minimum is %d",
			consolidation.ErrConsolidationConflict, len(members), MinConsolidationSize)
	}

	for _, member := range members {
		if err := member.Validate(); err != nil {
			return nil, nil, err
		}
		if !member.CustomerID().IsEqual(customerID) {
			return nil, nil, fmt.Errorf("%w: parcel %s belongs to customer %s",
				consolidation.ErrConsolidationConflict, member.ID(), member.CustomerID())
		}
		if member.IsConsolidated() {
			return nil, nil, fmt.Errorf("%w: parcel %s is already in consolidation %s",
				consolidation.ErrConsolidationConflict, member.ID(), member.ConsolidationID())
		}
		if member.IsDistributed() {
			return nil, nil, fmt.Errorf("%w: parcel %s was already distributed",
				consolidation.ErrConsolidationConflict, member.ID())
		}
	}

	cp, err := consolidation.NewConsolidatedPackage(id, trackingNumber, customerID, at)
	if err != nil {
		return nil, nil, err
	}

	if err = cp.ApplyTotals(consolidation.TotalsOf(members)); err != nil {
		return nil, nil, err
	}
	if derived, ok := deriveStatus(members); ok {
		if err = cp.SetStatus(derived); err != nil {
			return nil, nil, err
		}
	}

	for _, member := range members {
		if err = member.MarkConsolidated(id, at); err != nil {
			return nil, nil, err
		}
	}

	history := consolidation.NewHistory(
		id, consolidation.ActionConsolidated, memberIDs(members), cp.Totals(), cp.Status(), operator, "")
	return cp, history, nil
}

// Unconsolidate splits a consolidation back into independent parcels.
//
// Rejected when any member is already Delivered: a delivered parcel cannot be
// retroactively un-grouped. On success every member's link is cleared with
// its status untouched, the aggregate is deactivated, and a History snapshot
// of the pre-split state is returned.
func (c Consolidator) Unconsolidate(
	cp *consolidation.ConsolidatedPackage,
	members []*parcel.Parcel,
	operator, reason string,
	at time.Time,
) (*consolidation.History, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	if !cp.IsActive() {
		return nil, consolidation.ErrConsolidationInactive
	}

	for _, member := range members {
		if err := member.Validate(); err != nil {
			return nil, err
		}
		if member.Status() == parcel.Delivered {
			return nil, fmt.Errorf("%w: parcel %s is already delivered",
				consolidation.ErrConsolidationConflict, member.ID())
		}
	}

	// Snapshot before the split so the history row preserves membership.
	history := consolidation.NewHistory(
		cp.ID(), consolidation.ActionUnconsolidated, memberIDs(members), cp.Totals(), cp.Status(), operator, reason)

	for _, member := range members {
		if err := member.ClearConsolidation(); err != nil {
			return nil, err
		}
	}

	if err := cp.Deactivate(at); err != nil {
		return nil, err
	}

	return history, nil
}

// RecalculateTotals re-sums weight, quantity, and fee components across the
// current members. Must be called after any member's fee fields change; the
// recomputation is idempotent.
func (c Consolidator) RecalculateTotals(
	cp *consolidation.ConsolidatedPackage,
	members []*parcel.Parcel,
) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	return cp.ApplyTotals(consolidation.TotalsOf(members))
}

// SyncStatusFromMembers derives the aggregate status from member statuses:
// all members sharing one status use it directly, otherwise the
// highest-priority status wins. Delayed weighs zero and never propagates
// upward; when every member is Delayed the aggregate keeps its previous
// status and no history row is produced. Returns nil when the derived status
// equals the current one.
func (c Consolidator) SyncStatusFromMembers(
	cp *consolidation.ConsolidatedPackage,
	members []*parcel.Parcel,
	operator string,
) (*consolidation.History, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}

	derived, ok := deriveStatus(members)
	if !ok || derived == cp.Status() {
		return nil, nil
	}

	if err := cp.SetStatus(derived); err != nil {
		return nil, err
	}

	return consolidation.NewHistory(
		cp.ID(), consolidation.ActionStatusSync, memberIDs(members), cp.Totals(), derived, operator, ""), nil
}

// PushStatusToMembers forces every member through the consolidation bypass to
// the new aggregate status. Delivered may only be assigned this way when the
// aggregate itself moves to Delivered; the grant is derived from the target,
// never passed by callers. Returns the per-member status changes for the
// audit trail and a status-sync History row.
func (c Consolidator) PushStatusToMembers(
	cp *consolidation.ConsolidatedPackage,
	members []*parcel.Parcel,
	newStatus parcel.Status,
	operator, reason string,
) ([]*parcel.StatusChange, *consolidation.History, error) {
	if err := cp.Validate(); err != nil {
		return nil, nil, err
	}
	if !cp.IsActive() {
		return nil, nil, consolidation.ErrConsolidationInactive
	}

	allowDelivered := newStatus == parcel.Delivered
	changes := make([]*parcel.StatusChange, 0, len(members))
	for _, member := range members {
		change, err := member.ForceSetStatus(newStatus, operator, reason, allowDelivered)
		if err != nil {
			return nil, nil, err
		}
		if change != nil {
			changes = append(changes, change)
		}
	}

	if err := cp.SetStatus(newStatus); err != nil {
		return nil, nil, err
	}

	history := consolidation.NewHistory(
		cp.ID(), consolidation.ActionStatusSync, memberIDs(members), cp.Totals(), newStatus, operator, reason)
	return changes, history, nil
}

// deriveStatus applies the priority rule to a member set. The second return
// is false when no member carries a rankable status (all Delayed).
func deriveStatus(members []*parcel.Parcel) (parcel.Status, bool) {
	best := parcel.Unknown
	bestPriority := 0
	for _, member := range members {
		if p := member.Status().Priority(); p > bestPriority {
			bestPriority = p
			best = member.Status()
		}
	}
	return best, bestPriority > 0
}

func memberIDs(members []*parcel.Parcel) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.ID())
	}
	return ids
}
