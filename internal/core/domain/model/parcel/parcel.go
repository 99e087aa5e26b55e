package parcel

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrInvalidTransition is the sentinel error for status changes the
	// transition table does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrParcelInConsolidation is returned when a direct status change targets
	// a parcel that belongs to an active consolidation. Member statuses may
	// only change through the consolidation manager so member and aggregate
	// status never diverge.
	ErrParcelInConsolidation = errors.New("parcel belongs to an active consolidation")

	// ErrParcelAlreadyConsolidated is returned when grouping a parcel that is
	// already linked to an active consolidation.
	ErrParcelAlreadyConsolidated = errors.New("parcel is already consolidated")

	// ErrParcelNotConsolidated is returned when clearing a consolidation link
	// on a parcel that has none.
	ErrParcelNotConsolidated = errors.New("parcel is not consolidated")

	// ErrParcelAlreadyDistributed is returned when marking a parcel
	// distributed twice.
	ErrParcelAlreadyDistributed = errors.New("parcel is already distributed")

	// ErrTrackingNumberIsRequired is returned when a parcel is created without
	// a tracking number.
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")

	// ErrActorIsRequired is returned when a status change is requested without
	// an actor for the audit trail.
	ErrActorIsRequired = errors.New("actor is required")
)

// InvalidTransitionError describes a rejected status change with enough
// context for the caller to render a message. Unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	ParcelID kernel.UUID
	From     Status
	To       Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: parcel %s cannot move from %s to %s",
		ErrInvalidTransition, e.ParcelID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Fees holds the four per-parcel fee components. Fees is a value type reused
// for consolidated totals and distribution line items.
type Fees struct {
	Freight   kernel.Money
	Clearance kernel.Money
	Storage   kernel.Money
	Delivery  kernel.Money
}

// Total returns the exact sum of the four components.
func (f Fees) Total() kernel.Money {
	return f.Freight.Add(f.Clearance).Add(f.Storage).Add(f.Delivery)
}

// Add returns the component-wise sum of f and other.
func (f Fees) Add(other Fees) Fees {
	return Fees{
		Freight:   f.Freight.Add(other.Freight),
		Clearance: f.Clearance.Add(other.Clearance),
		Storage:   f.Storage.Add(other.Storage),
		Delivery:  f.Delivery.Add(other.Delivery),
	}
}

// Validate rejects negative fee components.
func (f Fees) Validate() error {
	if f.Freight.IsNegative() || f.Clearance.IsNegative() ||
		f.Storage.IsNegative() || f.Delivery.IsNegative() {
		return errs.NewValueIsInvalidError("fees must not be negative")
	}
	return nil
}

// Parcel represents a physical parcel in the system. It is the aggregate root
// that manages the parcel lifecycle from intake through delivery.
//
// Parcel follows these invariants:
//   - Status is always one reachable from its predecessor per the transition table
//   - A parcel delayed from status S may only return to S
//   - While linked to an active consolidation, status changes must be routed
//     through the consolidation manager
//   - Fee components are never negative; the total cost is always recomputed
//     from the components, never trusted from a stored value
//   - Parcels are never deleted; they are retired through their status
type Parcel struct {
	id              kernel.UUID
	customerID      kernel.UUID
	trackingNumber  string
	weight          kernel.Weight
	declaredValue   kernel.Money
	fees            Fees
	status          Status
	delayedFrom     *Status
	consolidationID *kernel.UUID
	consolidatedAt  *time.Time
	distributedAt   *time.Time
	version         int

	guard guard.ConstructorGuard
}

// NewParcel creates a parcel at intake in Pending status.
// Validates identifiers, tracking number, and fee components.
func NewParcel(
	id kernel.UUID,
	customerID kernel.UUID,
	trackingNumber string,
	weight kernel.Weight,
	declaredValue kernel.Money,
	fees Fees,
) (*Parcel, error) {
	p := &Parcel{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomerID(customerID),
		p.setTrackingNumber(trackingNumber),
		p.setDeclaredValue(declaredValue),
		p.setFees(fees),
	); err != nil {
		return nil, err
	}

	p.weight = weight
	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, including its status,
// delayed-from origin, consolidation link, distribution mark, and optimistic
// version.
func RestoreParcel(
	id kernel.UUID,
	customerID kernel.UUID,
	trackingNumber string,
	weight kernel.Weight,
	declaredValue kernel.Money,
	fees Fees,
	status Status,
	delayedFrom *Status,
	consolidationID *kernel.UUID,
	consolidatedAt *time.Time,
	distributedAt *time.Time,
	version int,
) (*Parcel, error) {
	p, err := NewParcel(id, customerID, trackingNumber, weight, declaredValue, fees)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if delayedFrom != nil {
		if err = delayedFrom.Validate(); err != nil {
			return nil, err
		}
	}

	p.status = status
	p.delayedFrom = delayedFrom
	p.consolidationID = consolidationID
	p.consolidatedAt = consolidatedAt
	p.distributedAt = distributedAt
	p.version = version
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// CustomerID returns the identifier of the owning customer.
func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

// TrackingNumber returns the parcel's unique tracking number.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// Weight returns the parcel's weight.
func (p *Parcel) Weight() kernel.Weight {
	return p.weight
}

// DeclaredValue returns the customer-declared value of the contents.
func (p *Parcel) DeclaredValue() kernel.Money {
	return p.declaredValue
}

// Fees returns the parcel's fee components.
func (p *Parcel) Fees() Fees {
	return p.fees
}

// TotalCost recomputes the parcel's total cost from its fee components.
// The total is never stored; stale persisted totals are never trusted.
func (p *Parcel) TotalCost() kernel.Money {
	return p.fees.Total()
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// DelayedFrom returns the status the parcel was delayed from.
// Returns nil when the parcel is not delayed.
func (p *Parcel) DelayedFrom() *Status {
	return p.delayedFrom
}

// ConsolidationID returns the identifier of the active consolidation the
// parcel belongs to. Returns nil for unconsolidated parcels.
func (p *Parcel) ConsolidationID() *kernel.UUID {
	return p.consolidationID
}

// ConsolidatedAt returns when the parcel joined its consolidation.
func (p *Parcel) ConsolidatedAt() *time.Time {
	return p.consolidatedAt
}

// IsConsolidated reports whether the parcel belongs to an active consolidation.
func (p *Parcel) IsConsolidated() bool {
	return p.consolidationID != nil
}

// DistributedAt returns when the parcel was distributed, nil if it was not.
func (p *Parcel) DistributedAt() *time.Time {
	return p.distributedAt
}

// IsDistributed reports whether the parcel was released to its customer.
func (p *Parcel) IsDistributed() bool {
	return p.distributedAt != nil
}

// Version returns the optimistic concurrency version loaded from persistence.
func (p *Parcel) Version() int {
	return p.version
}

// ChangeStatus applies an operator-driven status transition.
//
// Rules enforced:
//   - the transition table must permit current -> newStatus
//   - a Delayed parcel may only return to the status it was delayed from
//   - parcels in an active consolidation reject direct changes
//     (ErrParcelInConsolidation); those must go through the consolidation
//     manager so the aggregate status stays in sync
//   - newStatus == current is an idempotent no-op: no history row is
//     produced and nil, nil is returned
//
// On success the status is updated and a StatusChange audit record capturing
// old/new/actor/reason is returned for the caller to persist.
func (p *Parcel) ChangeStatus(newStatus Status, actor, reason string) (*StatusChange, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, ErrActorIsRequired
	}

	if newStatus == p.status {
		return nil, nil
	}

	if p.IsConsolidated() {
		return nil, ErrParcelInConsolidation
	}

	if p.status == Delayed {
		if p.delayedFrom == nil || newStatus != *p.delayedFrom {
			return nil, &InvalidTransitionError{ParcelID: p.id, From: p.status, To: newStatus}
		}
	} else if !p.status.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{ParcelID: p.id, From: p.status, To: newStatus}
	}

	return p.applyStatus(newStatus, actor, reason), nil
}

// ForceSetStatus is the single designed escape hatch around the transition
// table. It exists for two callers only: the consolidation manager pushing an
// aggregate status down to members, and the distribution allocator marking
// parcels Delivered on hand-over. It must never be exposed to ordinary
// callers.
//
// Delivered may only be forced when allowDelivered is explicitly granted.
// Setting the current status again is an idempotent no-op.
func (p *Parcel) ForceSetStatus(newStatus Status, actor, reason string, allowDelivered bool) (*StatusChange, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, ErrActorIsRequired
	}

	if newStatus == p.status {
		return nil, nil
	}

	if newStatus == Delivered && !allowDelivered {
		return nil, &InvalidTransitionError{ParcelID: p.id, From: p.status, To: newStatus}
	}

	return p.applyStatus(newStatus, actor, reason), nil
}

// applyStatus mutates the status, maintains the delayed-from origin, and
// produces the audit record.
func (p *Parcel) applyStatus(newStatus Status, actor, reason string) *StatusChange {
	old := p.status

	if newStatus == Delayed {
		from := old
		p.delayedFrom = &from
	} else {
		p.delayedFrom = nil
	}

	p.status = newStatus
	return NewStatusChange(p.id, old, newStatus, actor, reason)
}

// MarkConsolidated links the parcel to an active consolidation.
func (p *Parcel) MarkConsolidated(consolidationID kernel.UUID, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := consolidationID.Validate(); err != nil {
		return err
	}
	if p.IsConsolidated() {
		return ErrParcelAlreadyConsolidated
	}

	p.consolidationID = &consolidationID
	p.consolidatedAt = &at
	return nil
}

// ClearConsolidation removes the consolidation link, restoring the parcel to
// an independent shipment. The status is left untouched.
func (p *Parcel) ClearConsolidation() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsConsolidated() {
		return ErrParcelNotConsolidated
	}

	p.consolidationID = nil
	p.consolidatedAt = nil
	return nil
}

// MarkDistributed records the hand-over of the parcel to its customer.
func (p *Parcel) MarkDistributed(at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.IsDistributed() {
		return ErrParcelAlreadyDistributed
	}

	p.distributedAt = &at
	return nil
}

// SetFees replaces the parcel's fee components. Callers must recalculate the
// totals of the parcel's consolidation afterwards; the recalculation is an
// explicit service-layer step, not a hidden persistence hook.
func (p *Parcel) SetFees(fees Fees) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return p.setFees(fees)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	p.customerID = customerID
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setDeclaredValue(declaredValue kernel.Money) error {
	if declaredValue.IsNegative() {
		return errs.NewValueIsInvalidError("declared value must not be negative")
	}
	p.declaredValue = declaredValue
	return nil
}

func (p *Parcel) setFees(fees Fees) error {
	if err := fees.Validate(); err != nil {
		return err
	}
	p.fees = fees
	return nil
}
