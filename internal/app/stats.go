package app

import (
	"sync/atomic"
	"time"
)

// Stats counts what the shell loop did. It is safe for concurrent use.
type Stats struct {
	keys     atomic.Uint64
	lines    atomic.Uint64
	expanded atomic.Uint64
	rejected  atomic.Uint64
	truncated atomic.Uint64
	reloads   atomic.Uint64

	keyTotalNs atomic.Int64
	keyMaxNs   atomic.Int64

	startTime time.Time
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Keys      uint64
	Lines     uint64
	Expanded  uint64
	Rejected  uint64
	Truncated uint64
	Reloads   uint64

	AvgKey time.Duration
	MaxKey time.Duration
	Uptime time.Duration
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// RecordKeys records n keys handled in one batch taking d. MaxKey tracks
// the slowest batch.
func (s *Stats) RecordKeys(n int, d time.Duration) {
	if n <= 0 {
		return
	}
	ns := d.Nanoseconds()
	s.keys.Add(uint64(n))
	s.keyTotalNs.Add(ns)
	for {
		old := s.keyMaxNs.Load()
		if ns <= old || s.keyMaxNs.CompareAndSwap(old, ns) {
			return
		}
	}
}

// RecordLine records a completed line of lines commands.
func (s *Stats) RecordLine(lines int) {
	s.lines.Add(1)
	if lines > 1 {
		s.expanded.Add(1)
	}
}

// RecordRejected records a line refused on completion.
func (s *Stats) RecordRejected() {
	s.rejected.Add(1)
}

// RecordTruncated records a key whose text did not fit the line.
func (s *Stats) RecordTruncated() {
	s.truncated.Add(1)
}

// RecordReload records an alias file reload.
func (s *Stats) RecordReload() {
	s.reloads.Add(1)
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Keys:      s.keys.Load(),
		Lines:     s.lines.Load(),
		Expanded:  s.expanded.Load(),
		Rejected:  s.rejected.Load(),
		Truncated: s.truncated.Load(),
		Reloads:   s.reloads.Load(),
		MaxKey:    time.Duration(s.keyMaxNs.Load()),
		Uptime:    time.Since(s.startTime),
	}
	if snap.Keys > 0 {
		snap.AvgKey = time.Duration(s.keyTotalNs.Load() / int64(snap.Keys))
	}
	return snap
}

// Timer measures an operation.
type Timer struct {
	start time.Time
}

// StartTimer starts a new timer.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
