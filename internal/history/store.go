package history

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Default pool settings.
const (
	DefaultCapacity     = 50
	DefaultMaxHistories = 4
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCapacity sets the capacity of newly created histories.
func WithCapacity(n int) StoreOption {
	return func(s *Store) {
		if n >= 0 && n <= MaxCapacity {
			s.capacity = n
		}
	}
}

// WithMaxHistories sets the maximum number of histories in the pool.
func WithMaxHistories(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxHistories = n
		}
	}
}

// Store is the bounded pool of command histories.
//
// Store is not safe for concurrent use; callers serialize access with
// the lock that guards all line-editing state.
type Store struct {
	histories    []*History
	capacity     int
	maxHistories int

	// releaseSeq increases on every Release.
	releaseSeq uint64
}

// NewStore creates an empty pool.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		capacity:     DefaultCapacity,
		maxHistories: DefaultMaxHistories,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sameOwner compares owner names case-insensitively.
func sameOwner(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Allocate binds a history to the process pid running owner.
//
// A free history last used by the same owner is reactivated with its
// commands intact, the most recently released one first. Otherwise a new
// history is created while the pool is below its maximum. Otherwise the
// least recently released free history is cleared and renamed.
func (s *Store) Allocate(owner string, pid ProcessID) (*History, error) {
	var same, lru *History
	for _, h := range s.histories {
		if h.allocated {
			continue
		}
		if sameOwner(h.owner, owner) && (same == nil || h.releasedAt > same.releasedAt) {
			same = h
		}
		if lru == nil || h.releasedAt < lru.releasedAt {
			lru = h
		}
	}

	if same != nil {
		same.activate(pid)
		return same, nil
	}

	if len(s.histories) < s.maxHistories {
		h := newHistory(owner, pid, s.capacity)
		s.histories = append(s.histories, h)
		return h, nil
	}

	if lru == nil {
		return nil, fmt.Errorf("%w: %d histories in use", ErrNoFreeHistory, len(s.histories))
	}

	lru.ClearAll()
	lru.owner = owner
	lru.activate(pid)
	return lru, nil
}

func (h *History) activate(pid ProcessID) {
	h.allocated = true
	h.pid = pid
}

// Release returns h to the free pool. Its commands are kept.
func (s *Store) Release(h *History) {
	if h == nil || !h.allocated {
		return
	}
	s.releaseSeq++
	h.allocated = false
	h.pid = 0
	h.releasedAt = s.releaseSeq
}

// Find returns the allocated history of owner.
func (s *Store) Find(owner string) (*History, bool) {
	for _, h := range s.histories {
		if h.allocated && sameOwner(h.owner, owner) {
			return h, true
		}
	}
	return nil, false
}

// FindByProcess returns the history bound to pid.
func (s *Store) FindByProcess(pid ProcessID) (*History, bool) {
	for _, h := range s.histories {
		if h.allocated && h.pid == pid {
			return h, true
		}
	}
	return nil, false
}

// Histories returns every history in the pool, allocated or not.
func (s *Store) Histories() []*History {
	out := make([]*History, len(s.histories))
	copy(out, s.histories)
	return out
}

// Len returns the number of histories in the pool.
func (s *Store) Len() int {
	return len(s.histories)
}

// Capacity returns the capacity given to new histories.
func (s *Store) Capacity() int {
	return s.capacity
}

// MaxHistories returns the pool limit.
func (s *Store) MaxHistories() int {
	return s.maxHistories
}

// SetCapacity changes the capacity of new histories and resizes every
// existing one.
func (s *Store) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("history capacity %d: %w", n, ErrZeroCapacity)
	}
	if n > MaxCapacity {
		return fmt.Errorf("history capacity %d: %w", n, ErrCapacityTooLarge)
	}
	s.capacity = n
	for _, h := range s.histories {
		h.ResizeCapacity(n)
	}
	return nil
}

// SetMaxHistories changes the pool limit. Existing histories beyond the
// new limit stay until the pool shrinks below it.
func (s *Store) SetMaxHistories(n int) {
	if n > 0 {
		s.maxHistories = n
	}
}
