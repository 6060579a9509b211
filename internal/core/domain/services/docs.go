// Package services provides domain services that work across the order and cart
// aggregates without belonging to either.
//
// The package includes:
//   - CartConsolidator: turns cart lines into frozen order line items and back (reorder)
//   - OrderNumberGenerator: produces time-derived, process-unique order numbers
package services
