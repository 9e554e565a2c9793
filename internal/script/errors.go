package script

import (
	"errors"
	"fmt"
)

var (
	// ErrStateClosed is returned when running a closed Runner.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script exceeds its time limit.
	ErrTimeout = errors.New("script timed out")
)

// Error reports a failed script with its path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
