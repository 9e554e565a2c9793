package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// persistedHistory is the YAML form of one history.
type persistedHistory struct {
	Owner    string   `yaml:"owner"`
	Capacity int      `yaml:"capacity"`
	Commands []string `yaml:"commands"`
}

// persistedData is the root of a history file.
type persistedData struct {
	Version   int                `yaml:"version"`
	SavedAt   time.Time          `yaml:"saved_at"`
	Histories []persistedHistory `yaml:"histories"`
}

const currentVersion = 1

// SaveFile writes every history in the pool to path, most recently used
// first. The file is written atomically using a temporary file and
// rename.
func (s *Store) SaveFile(path string) error {
	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now(),
	}
	for _, h := range s.byRecency() {
		if h.count == 0 {
			continue
		}
		data.Histories = append(data.Histories, persistedHistory{
			Owner:    h.owner,
			Capacity: h.Capacity(),
			Commands: h.Commands(),
		})
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to marshal histories: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, out, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// LoadFile adds the histories saved in path to the pool as free
// histories, so the next Allocate for one of their owners picks them up.
// A missing file is not an error. Entries that do not fit in the pool
// are skipped.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read history file: %w", err)
	}

	var data persistedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to unmarshal histories: %w", err)
	}
	if data.Version > currentVersion {
		return fmt.Errorf("unsupported history file version: %d (max supported: %d)",
			data.Version, currentVersion)
	}

	entries := data.Histories
	if room := s.maxHistories - len(s.histories); len(entries) > room {
		entries = entries[:max(room, 0)]
	}

	// The file lists the most recently used history first; release in
	// reverse so that order survives.
	for i := len(entries) - 1; i >= 0; i-- {
		p := entries[i]
		capacity := s.capacity
		if p.Capacity > 0 && p.Capacity <= MaxCapacity {
			capacity = p.Capacity
		}

		h := newHistory(p.Owner, 0, capacity)
		for _, cmd := range p.Commands {
			if err := h.Record(cmd, false); err != nil {
				break
			}
		}
		s.histories = append(s.histories, h)
		s.Release(h)
	}
	return nil
}

// byRecency returns allocated histories first, then free ones from the
// most recently released.
func (s *Store) byRecency() []*History {
	out := make([]*History, 0, len(s.histories))
	for _, h := range s.histories {
		if h.allocated {
			out = append(out, h)
		}
	}
	free := make([]*History, 0, len(s.histories))
	for _, h := range s.histories {
		if !h.allocated {
			free = append(free, h)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		return free[i].releasedAt > free[j].releasedAt
	})
	return append(out, free...)
}
