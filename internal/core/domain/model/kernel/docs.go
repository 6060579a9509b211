// Package kernel provides the value objects shared by the order model.
//
// The package includes:
//   - Money: a non-negative fixed-point currency amount backed by shopspring/decimal
//   - Coordinate: a validated latitude/longitude pair used for delivery range checks
//
// Both types are immutable and carry a constructor guard, so a zero value
// built with a struct literal fails Validate.
package kernel
