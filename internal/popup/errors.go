package popup

import "errors"

// Common errors for popup operations.
var (
	// ErrTooSmall is returned by Push when the screen cannot hold the
	// popup frame.
	ErrTooSmall = errors.New("screen too small for popup")

	// ErrNoHistory is returned by Push for a history popup when there is
	// no command to show.
	ErrNoHistory = errors.New("no command history")
)
