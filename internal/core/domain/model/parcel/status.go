package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a state machine with a single explicit transition table so
// that every status rule lives in one place rather than in per-call-site
// conditionals.
//
// Forward chain:
//
//	Pending ──> Processing ──> Shipped ──> Customs ──> Ready ──> Delivered
//
// Delayed is a side-state reachable from any non-terminal status. A delayed
// parcel returns to the exact status it was delayed from; the origin is
// tracked explicitly on the parcel, never inferred. Delivered is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at intake.
	Pending

	// Processing indicates the parcel is being prepared for shipment.
	Processing

	// Shipped indicates the parcel is in transit to the destination country.
	Shipped

	// Customs indicates the parcel is undergoing customs clearance.
	Customs

	// Ready indicates the parcel has cleared customs and awaits distribution
	// to its customer.
	Ready

	// Delivered indicates the parcel was handed over to the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Delayed is a side-state for parcels held up at any non-terminal point
	// in the chain. A delayed parcel may only return to the status it was
	// delayed from.
	Delayed
)

// transitionTable is the single source of truth for forward transitions.
// Delayed entry/exit is handled separately because the exit target depends
// on the status the parcel was delayed from.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing},
		Processing: {Shipped},
		Shipped:    {Customs},
		Customs:    {Ready},
		Ready:      {Delivered},
		Delivered:  {},
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Customs:    "Customs",
		Ready:      "Ready",
		Delivered:  "Delivered",
		Delayed:    "Delayed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Customs:    "Customs",
		Ready:      "Ready",
		Delivered:  "Delivered",
		Delayed:    "Delayed",
	}
}

// statusPriorities maps each status to its weight for aggregate status
// synchronization. Higher wins. Delayed is excluded from the scale (weight 0)
// and therefore never propagates upward as a consolidated status.
func statusPriorities() map[Status]int {
	return map[Status]int{
		Delivered:  6,
		Ready:      5,
		Customs:    4,
		Shipped:    3,
		Processing: 2,
		Pending:    1,
		Delayed:    0,
	}
}

// Validate checks if the Status value is one of the defined parcel statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status by its human-readable name.
// Returns an error for "Unknown" and unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Priority returns the status weight used when deriving a consolidated
// shipment's status from its members. Delayed and invalid statuses weigh 0.
func (s Status) Priority() int {
	return statusPriorities()[s]
}

// CanTransitionTo reports whether the transition table permits moving from s
// to next. Delayed handling:
//   - any non-terminal status may enter Delayed
//   - Delayed itself permits nothing here; the exit target is validated by
//     the parcel against its recorded delayed-from status
func (s Status) CanTransitionTo(next Status) bool {
	if next == Delayed {
		return s != Delayed && !s.IsTerminal()
	}
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
