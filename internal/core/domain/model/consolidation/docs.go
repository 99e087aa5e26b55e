// Package consolidation provides the ConsolidatedPackage aggregate: a
// logical shipment grouping two or more parcels owned by one customer.
//
// The aggregate carries recomputed totals (weight, quantity, fee components)
// and a status mirroring its members. It is deactivated on split, never
// deleted. Every grouping event is snapshotted as an append-only History
// record. Grouping rules themselves live in the consolidation manager domain
// service; this package holds state and invariant enforcement for the
// aggregate.
package consolidation
