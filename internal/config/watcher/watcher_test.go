package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collect(t *testing.T, w *Watcher) <-chan Event {
	t.Helper()
	ch := make(chan Event, 16)
	w.OnChange(func(ev Event) { ch <- ev })
	return ch
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "aliases")
	other := filepath.Join(dir, "other")

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	if err := w.Watch(target); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	events := collect(t, w)
	w.Start()

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("cl=cls"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	if ev.Path != target {
		t.Errorf("event path = %q, want %q", ev.Path, target)
	}
	if ev.Op != OpCreate {
		t.Errorf("event op = %v, want create", ev.Op)
	}
}

func TestWatcherDebounce(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(50 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	if err := w.Watch(target); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	events := collect(t, w)
	w.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev := waitEvent(t, events)
	if ev.Op != OpWrite {
		t.Errorf("event op = %v, want write", ev.Op)
	}
	select {
	case extra := <-events:
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherUnwatchAndStop(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatal(err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}
	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch() error = %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 1 || got[0] != b {
		t.Errorf("WatchedFiles() = %v, want [%s]", got, b)
	}

	w.Start()
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if err := w.Watch(a); err != ErrClosed {
		t.Errorf("Watch after Stop error = %v, want ErrClosed", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		pending, next, want Operation
	}{
		{OpCreate, OpWrite, OpCreate},
		{OpWrite, OpWrite, OpWrite},
		{OpWrite, OpRemove, OpRemove},
		{OpRemove, OpCreate, OpCreate},
		{OpRename, OpWrite, OpCreate},
		{OpWrite, OpRename, OpRename},
	}
	for _, tt := range tests {
		if got := coalesce(tt.pending, tt.next); got != tt.want {
			t.Errorf("coalesce(%v, %v) = %v, want %v", tt.pending, tt.next, got, tt.want)
		}
	}
}
