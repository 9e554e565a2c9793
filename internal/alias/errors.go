package alias

import "errors"

// Common errors for alias operations.
var (
	// ErrNoAlias is returned by Expand when the first token of the line is
	// not an alias. The caller uses the line unchanged.
	ErrNoAlias = errors.New("no alias")

	// ErrBufferTooSmall is returned when an expansion or export does not
	// fit the destination. Nothing is written in that case.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrInvalidSource is returned by Define for an empty source.
	ErrInvalidSource = errors.New("invalid alias source")

	// ErrNotFound is returned when an owner has no aliases.
	ErrNotFound = errors.New("alias not found")
)
