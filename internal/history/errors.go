package history

import "errors"

// Common errors for history operations.
var (
	// ErrNoFreeHistory is returned by Allocate when the pool is at its
	// maximum and every history is in use.
	ErrNoFreeHistory = errors.New("no free command history")

	// ErrZeroCapacity is returned by Record on a history that cannot hold
	// any command.
	ErrZeroCapacity = errors.New("command history has zero capacity")

	// ErrCapacityTooLarge is returned when a capacity above MaxCapacity is
	// requested.
	ErrCapacityTooLarge = errors.New("command history capacity too large")

	// ErrNotFound is returned when no history belongs to an owner.
	ErrNotFound = errors.New("command history not found")

	// ErrBufferTooSmall is returned by Export when dst cannot hold the
	// data. Nothing is written in that case.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrNotAllocated is returned when operating on a released history.
	ErrNotAllocated = errors.New("command history is not allocated")
)
