package planner

import "errors"

// Error kinds surfaced by the planner. Callers match them with errors.Is;
// every failure path wraps one of these with context.
var (
	// ErrInvalidInput covers zero/negative durations, out-of-range custom
	// percentages, and a missing threshold pace.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexOutOfRange is returned when a reorder or delete names a block
	// index that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)
