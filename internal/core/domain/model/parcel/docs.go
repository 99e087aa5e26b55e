// Package parcel provides the Parcel aggregate root and its status state
// machine.
//
// The package includes:
//   - Parcel: the aggregate root managing identity, fees, consolidation
//     linkage, and lifecycle
//   - Status: a state machine with an explicit transition table
//   - StatusChange: the immutable audit record for every status mutation
//
// Key business rules:
//   - Statuses follow Pending -> Processing -> Shipped -> Customs -> Ready ->
//     Delivered; Delayed is a side-state that returns to its origin
//   - Parcels in an active consolidation only change status through the
//     consolidation manager
//   - ForceSetStatus is the one designed bypass, reserved for consolidation
//     sync and distribution; forcing Delivered requires an explicit grant
//   - Total cost is always recomputed from the fee components
package parcel
