package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed wraps every ValidationError returned by Validate.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotLoaded is returned by Reload before Load succeeded.
	ErrNotLoaded = errors.New("configuration not loaded")
)

// ValidationError describes a setting with an unusable value.
type ValidationError struct {
	// Path is the setting path, such as "history.size".
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is makes every ValidationError match ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// DecodeError reports merged settings that do not fit the typed sections,
// such as a string where a number is expected.
type DecodeError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding configuration from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
