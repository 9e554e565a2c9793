package app

import (
	"testing"
	"time"
)

func TestStats(t *testing.T) {
	s := NewStats()
	s.RecordKeys(3, 30*time.Millisecond)
	s.RecordKeys(1, 50*time.Millisecond)
	s.RecordKeys(0, time.Second)
	s.RecordLine(1)
	s.RecordLine(3)
	s.RecordRejected()
	s.RecordTruncated()
	s.RecordTruncated()
	s.RecordReload()

	snap := s.Snapshot()
	want := StatsSnapshot{Keys: 4, Lines: 2, Expanded: 1, Rejected: 1, Truncated: 2, Reloads: 1}
	if snap.Keys != want.Keys || snap.Lines != want.Lines || snap.Expanded != want.Expanded ||
		snap.Rejected != want.Rejected || snap.Truncated != want.Truncated || snap.Reloads != want.Reloads {
		t.Errorf("Snapshot() = %+v, want counts %+v", snap, want)
	}
	if snap.AvgKey != 20*time.Millisecond {
		t.Errorf("AvgKey = %v, want 20ms", snap.AvgKey)
	}
	if snap.MaxKey != 50*time.Millisecond {
		t.Errorf("MaxKey = %v, want 50ms", snap.MaxKey)
	}
}
