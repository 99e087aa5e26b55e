// Package kernel provides core domain primitives for the parcels system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A fixed-point monetary amount with two fraction digits
//   - Weight: A parcel weight in kilograms with gram resolution
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use. Monetary arithmetic
// is exact: rounding to cents happens only at allocation boundaries, never
// mid-computation, so sums always reconcile to the cent.
package kernel
