// Package kernel contains shared value objects used across the domain model.
//
// The package provides:
//   - ID: integer identity for entities and aggregates
//   - Money: cents-backed monetary value with two-decimal formatting
//
// All value objects are immutable and validate their invariants at
// construction time. Zero values are invalid and rejected by Validate,
// which lets persistence adapters detect objects that bypassed the
// constructors.
package kernel
