// Package input defines where key events come from.
//
// A Source hands out one event at a time. When no event is ready and the
// caller did not allow blocking, Next returns ErrWouldBlock; the session
// treats that as "suspend and come back later" rather than as a failure.
//
// Queue is an in-memory Source. The application feeds it from the
// terminal backend and tests feed it directly:
//
//	q := input.NewQueue()
//	q.Push(key.NewRuneEvent('d', key.ModNone))
//	ev, err := q.Next(false)
package input
