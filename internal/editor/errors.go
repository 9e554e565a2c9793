package editor

import "errors"

// Common errors for editor configuration.
var (
	// ErrUnknownAction is returned when a binding names an action that
	// does not exist.
	ErrUnknownAction = errors.New("unknown editor action")

	// ErrInvalidBinding is returned when a binding key cannot be parsed.
	ErrInvalidBinding = errors.New("invalid key binding")
)
