package alias

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile defines the aliases of a macro file. The file maps owners to
// source/target pairs:
//
//	keyline:
//	  ll: ls -l $*
//	  up: cd ..
//
// Entries of a loaded file replace earlier definitions of the same
// source. It returns the number of aliases defined.
func (r *Registry) LoadFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read alias file: %w", err)
	}
	return r.Load(raw)
}

// Load defines the aliases of YAML macro data.
func (r *Registry) Load(raw []byte) (int, error) {
	var data map[string]map[string]string
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("failed to unmarshal aliases: %w", err)
	}

	n := 0
	for owner, aliases := range data {
		for source, target := range aliases {
			if err := r.Define(owner, source, target); err != nil {
				return n, fmt.Errorf("owner %s: %w", owner, err)
			}
			if target != "" {
				n++
			}
		}
	}
	return n, nil
}

// SaveFile writes every alias to path. The file is written atomically
// using a temporary file and rename.
func (r *Registry) SaveFile(path string) error {
	data := make(map[string]map[string]string)
	for _, owner := range r.ListOwners() {
		aliases := make(map[string]string)
		for _, a := range r.ListAll(owner) {
			aliases[a.Source] = a.Target
		}
		data[owner] = aliases
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
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
