package consolidation

import (
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var (
	// ErrConsolidatedPackageIsNotConstructed is returned when a
	// ConsolidatedPackage was not created through its constructors.
	ErrConsolidatedPackageIsNotConstructed = errors.New(
		"ConsolidatedPackage must be created via NewConsolidatedPackage constructor")

	// ErrConsolidationConflict is the sentinel error for grouping rules:
	// a parcel already grouped, members of mixed customers, groups below the
	// policy minimum, or split attempts involving delivered members.
	ErrConsolidationConflict = errors.New("consolidation conflict")

	// ErrConsolidationInactive is returned when mutating a consolidation that
	// was already unconsolidated.
	ErrConsolidationInactive = errors.New("consolidation is not active")
)

// Totals holds the aggregate figures of a consolidated shipment. Totals are
// always recomputed as the sum over current members, never adjusted
// incrementally.
type Totals struct {
	Weight   kernel.Weight
	Quantity int
	Fees     parcel.Fees
}

// TotalsOf sums weight, quantity, and every fee component across members.
// Summation is exact; recomputation is idempotent.
func TotalsOf(members []*parcel.Parcel) Totals {
	totals := Totals{Weight: kernel.ZeroWeight()}
	for _, member := range members {
		totals.Weight = totals.Weight.Add(member.Weight())
		totals.Quantity++
		totals.Fees = totals.Fees.Add(member.Fees())
	}
	return totals
}

// ConsolidatedPackage is an aggregate shipment grouping two or more parcels
// owned by one customer.
//
// Invariants:
//   - totals always equal the sum over currently-member parcels
//   - status equals the highest-priority status among members (Delayed
//     excluded from the scale)
//   - deactivated consolidations are preserved, never deleted
type ConsolidatedPackage struct {
	id               kernel.UUID
	trackingNumber   string
	customerID       kernel.UUID
	totals           Totals
	status           parcel.Status
	isActive         bool
	consolidatedAt   time.Time
	unconsolidatedAt *time.Time
	version          int

	guard guard.ConstructorGuard
}

// NewConsolidatedPackage creates an active consolidated shipment.
// Totals and status are derived from the initial member set by the
// consolidation manager; the constructor only validates identity.
func NewConsolidatedPackage(
	id kernel.UUID,
	trackingNumber string,
	customerID kernel.UUID,
	consolidatedAt time.Time,
) (*ConsolidatedPackage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, parcel.ErrTrackingNumberIsRequired
	}

	return &ConsolidatedPackage{
		id:             id,
		trackingNumber: trackingNumber,
		customerID:     customerID,
		totals:         Totals{Weight: kernel.ZeroWeight()},
		status:         parcel.Pending,
		isActive:       true,
		consolidatedAt: consolidatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreConsolidatedPackage reconstructs a consolidated shipment from
// persistence.
func RestoreConsolidatedPackage(
	id kernel.UUID,
	trackingNumber string,
	customerID kernel.UUID,
	totals Totals,
	status parcel.Status,
	isActive bool,
	consolidatedAt time.Time,
	unconsolidatedAt *time.Time,
	version int,
) (*ConsolidatedPackage, error) {
	cp, err := NewConsolidatedPackage(id, trackingNumber, customerID, consolidatedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	cp.totals = totals
	cp.status = status
	cp.isActive = isActive
	cp.unconsolidatedAt = unconsolidatedAt
	cp.version = version
	return cp, nil
}

// Validate ensures the instance was properly constructed.
func (c *ConsolidatedPackage) Validate() error {
	if c == nil {
		return ErrConsolidatedPackageIsNotConstructed
	}
	return c.guard.Validate(ErrConsolidatedPackageIsNotConstructed)
}

// ID returns the consolidation's unique identifier.
func (c *ConsolidatedPackage) ID() kernel.UUID {
	return c.id
}

// TrackingNumber returns the synthetic CONS tracking number.
func (c *ConsolidatedPackage) TrackingNumber() string {
	return c.trackingNumber
}

// CustomerID returns the identifier of the owning customer.
func (c *ConsolidatedPackage) CustomerID() kernel.UUID {
	return c.customerID
}

// Totals returns the current aggregate totals.
func (c *ConsolidatedPackage) Totals() Totals {
	return c.totals
}

// Status returns the aggregate status mirroring member statuses.
func (c *ConsolidatedPackage) Status() parcel.Status {
	return c.status
}

// IsActive reports whether the consolidation still groups its members.
func (c *ConsolidatedPackage) IsActive() bool {
	return c.isActive
}

// ConsolidatedAt returns when the group was formed.
func (c *ConsolidatedPackage) ConsolidatedAt() time.Time {
	return c.consolidatedAt
}

// UnconsolidatedAt returns when the group was split, nil while active.
func (c *ConsolidatedPackage) UnconsolidatedAt() *time.Time {
	return c.unconsolidatedAt
}

// Version returns the optimistic concurrency version loaded from persistence.
func (c *ConsolidatedPackage) Version() int {
	return c.version
}

// ApplyTotals replaces the aggregate totals with freshly recomputed figures.
func (c *ConsolidatedPackage) ApplyTotals(totals Totals) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.isActive {
		return ErrConsolidationInactive
	}

	c.totals = totals
	return nil
}

// SetStatus sets the aggregate status. The value is derived from member
// statuses by the consolidation manager; the aggregate itself carries no
// transition table because it only mirrors its members.
func (c *ConsolidatedPackage) SetStatus(status parcel.Status) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if !c.isActive {
		return ErrConsolidationInactive
	}

	c.status = status
	return nil
}

// Deactivate closes the consolidation when its members are ungrouped.
// The record is preserved for history; only the active flag and the
// unconsolidated timestamp change.
func (c *ConsolidatedPackage) Deactivate(at time.Time) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.isActive {
		return ErrConsolidationInactive
	}

	c.isActive = false
	c.unconsolidatedAt = &at
	return nil
}
