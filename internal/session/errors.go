package session

import "errors"

// Session errors.
var (
	// ErrUnknownProcess is returned by Attach when the owner registry
	// does not know the process.
	ErrUnknownProcess = errors.New("unknown client process")

	// ErrReadInProgress is returned by Begin while a read is active.
	ErrReadInProgress = errors.New("read already in progress")

	// ErrNoRead is returned when a key is submitted without an active
	// read.
	ErrNoRead = errors.New("no read in progress")

	// ErrAborted reports a read torn down by Abort or a closed source.
	ErrAborted = errors.New("read aborted")

	// ErrInterrupted reports a read ended by ReadOptions.Interrupt.
	ErrInterrupted = errors.New("read interrupted")

	// ErrDetached is returned by a session after Detach.
	ErrDetached = errors.New("session detached")

	// ErrLineFull reports a key whose text did not fit the edit buffer.
	// Editing continues with what fit.
	ErrLineFull = errors.New("edit line full")
)
