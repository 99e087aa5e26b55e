// Package events defines the domain events emitted after successful commits.
// Events carry identifiers only; the notification, receipt, and broadcast
// collaborators fetch full detail themselves. The core never formats
// customer-facing documents. Delivery to consumers is at-least-once; the
// state mutation that produced an event committed exactly once.
package events

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// DomainEvent is implemented by every event published by the core.
type DomainEvent interface {
	// EventName returns the stable name consumers subscribe to.
	EventName() string
}

// PackageStatusChanged is emitted after a parcel status transition commits.
type PackageStatusChanged struct {
	ParcelID  kernel.UUID
	OldStatus parcel.Status
	NewStatus parcel.Status
	Actor     string
}

func (PackageStatusChanged) EventName() string { return "package.status_changed" }

// ConsolidationCreated is emitted after a group of parcels is consolidated.
type ConsolidationCreated struct {
	ConsolidationID kernel.UUID
	TrackingNumber  string
	MemberIDs       []kernel.UUID
}

func (ConsolidationCreated) EventName() string { return "consolidation.created" }

// ConsolidationSplit is emitted after a consolidation is ungrouped.
type ConsolidationSplit struct {
	ConsolidationID kernel.UUID
	MemberIDs       []kernel.UUID
}

func (ConsolidationSplit) EventName() string { return "consolidation.split" }

// DistributionCompleted is emitted after a settlement commits. Consumed
// externally for receipt email and PDF generation.
type DistributionCompleted struct {
	DistributionID kernel.UUID
	ReceiptNumber  string
	CustomerID     kernel.UUID
}

func (DistributionCompleted) EventName() string { return "distribution.completed" }
