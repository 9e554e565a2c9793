package session

// Status is the state a read is left in after a call.
type Status int

const (
	// StatusAwaitingInput means the read needs more key events.
	StatusAwaitingInput Status = iota

	// StatusLineComplete means Result.Text holds a finished line.
	StatusLineComplete

	// StatusTruncated means Result.Text holds a finished line cut to
	// ReadOptions.MaxLength. The rest is returned by the next read.
	StatusTruncated

	// StatusRejected means Enter was refused because the alias
	// expansion did not fit. The line stays in the editor.
	StatusRejected

	// StatusAborted means the read ended without a line.
	StatusAborted
)

var statusNames = [...]string{
	StatusAwaitingInput: "awaiting input",
	StatusLineComplete:  "line complete",
	StatusTruncated:     "truncated",
	StatusRejected:      "rejected",
	StatusAborted:       "aborted",
}

// String returns a human-readable status.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Done reports whether the read is over.
func (s Status) Done() bool {
	return s == StatusLineComplete || s == StatusTruncated || s == StatusAborted
}

// Result is the outcome of feeding a read.
type Result struct {
	Status Status

	// Text is the completed line without a line terminator.
	Text string

	// Lines is the number of commands the line expanded to, counting
	// this one. It is 1 unless an alias produced several lines.
	Lines int

	// Err explains StatusRejected and StatusAborted. With
	// StatusAwaitingInput it may hold ErrLineFull.
	Err error
}
