// Package services contains stateless domain services coordinating behavior
// across aggregates.
//
// The Consolidator groups parcels under a consolidated shipment, keeps the
// aggregate's totals and status consistent with its members, and records
// every grouping event for the audit trail. It owns the only legitimate uses
// of the parcel status bypass besides distribution hand-over.
package services
