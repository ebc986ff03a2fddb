// Package nutrition holds the calorie and body-mass calculators. Every function here is pure:
// inputs come in as values, results go out as values, and nothing is logged or cached.
package nutrition

import "errors"

var (
	// ErrDimensionMismatch means a selection does not line up with its catalog.
	ErrDimensionMismatch = errors.New("DIMENSION_MISMATCH")

	// ErrInvalidMeasurement means a user supplied value cannot be used, such as a
	// negative weight or a height that resolves to zero.
	ErrInvalidMeasurement = errors.New("INVALID_MEASUREMENT")
)
