package input

import (
	"errors"
	"sync"

	"github.com/dshills/keyline/internal/input/key"
)

// Source errors.
var (
	// ErrWouldBlock is returned by Next when no event is available and
	// blocking was not allowed.
	ErrWouldBlock = errors.New("input: would block")

	// ErrClosed is returned once a closed source has been drained.
	ErrClosed = errors.New("input: source closed")
)

// Source supplies key events.
type Source interface {
	// Next returns the next event. With blocking false it returns
	// ErrWouldBlock instead of waiting.
	Next(blocking bool) (key.Event, error)
}

// Queue is a FIFO Source safe for one producer and one consumer on
// different goroutines.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	events []key.Event
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue(events ...key.Event) *Queue {
	q := &Queue{events: append([]key.Event(nil), events...)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends events and wakes a blocked reader.
func (q *Queue) Push(events ...key.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.events = append(q.events, events...)
	q.cond.Signal()
}

// PushString queues one rune event per character of s.
func (q *Queue) PushString(s string) {
	events := make([]key.Event, 0, len(s))
	for _, r := range s {
		if r == '\r' || r == '\n' {
			events = append(events, key.NewSpecialEvent(key.KeyEnter, key.ModNone))
			continue
		}
		events = append(events, key.NewRuneEvent(r, key.ModNone))
	}
	q.Push(events...)
}

// Next implements Source.
func (q *Queue) Next(blocking bool) (key.Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 {
		if q.closed {
			return key.Event{}, ErrClosed
		}
		if !blocking {
			return key.Event{}, ErrWouldBlock
		}
		q.cond.Wait()
	}

	ev := q.events[0]
	q.events = q.events[1:]
	return ev, nil
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}

// Close stops the queue. Queued events can still be read.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// Ensure Queue implements Source.
var _ Source = (*Queue)(nil)
