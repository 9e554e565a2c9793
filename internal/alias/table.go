package alias

import (
	"fmt"

	"golang.org/x/text/cases"
)

// DefaultShellOwner is the owner name of the shell's own interactive
// aliases.
const DefaultShellOwner = "keyline"

// Alias is one source to target mapping.
type Alias struct {
	Source string
	Target string
}

// table holds the aliases of one owner, most recently used first.
type table struct {
	owner   string
	key     string
	entries []entry
}

type entry struct {
	Alias
	key string
}

// Option configures a Registry.
type Option func(*Registry)

// WithShellOwner sets the owner cleared by ClearShell.
func WithShellOwner(owner string) Option {
	return func(r *Registry) {
		if owner != "" {
			r.shellOwner = owner
		}
	}
}

// Registry holds the alias tables of every owner.
//
// Registry is not safe for concurrent use.
type Registry struct {
	tables     []*table
	shellOwner string
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{shellOwner: DefaultShellOwner}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fold returns the case-insensitive key of s. A Caser keeps state, so a
// fresh one is used per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ShellOwner returns the owner cleared by ClearShell.
func (r *Registry) ShellOwner() string {
	return r.shellOwner
}

func (r *Registry) findTable(owner string) *table {
	key := fold(owner)
	for _, t := range r.tables {
		if t.key == key {
			return t
		}
	}
	return nil
}

// promote moves source to the front of t. It reports whether source is
// defined.
func (t *table) promote(source string) bool {
	key := fold(source)
	for i, e := range t.entries {
		if e.key != key {
			continue
		}
		copy(t.entries[1:i+1], t.entries[:i])
		t.entries[0] = e
		return true
	}
	return false
}

// Define adds or replaces the alias source for owner. An empty target
// removes the alias; removing an undefined alias is a no-op.
func (r *Registry) Define(owner, source, target string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidSource)
	}

	t := r.findTable(owner)
	if target == "" {
		if t == nil {
			return nil
		}
		if t.promote(source) {
			t.entries = t.entries[1:]
		}
		return nil
	}

	if t == nil {
		t = &table{owner: owner, key: fold(owner)}
		r.tables = append(r.tables, t)
	}
	if t.promote(source) {
		t.entries[0].Target = target
		return nil
	}

	e := entry{Alias: Alias{Source: source, Target: target}, key: fold(source)}
	t.entries = append(t.entries, entry{})
	copy(t.entries[1:], t.entries)
	t.entries[0] = e
	return nil
}

// Lookup returns the target of source for owner and moves it to the
// front of the owner's table.
func (r *Registry) Lookup(owner, source string) (string, bool) {
	t := r.findTable(owner)
	if t == nil {
		return "", false
	}
	if !t.promote(source) {
		return "", false
	}
	return t.entries[0].Target, true
}

// ListAll returns the aliases of owner, most recently used first.
func (r *Registry) ListAll(owner string) []Alias {
	t := r.findTable(owner)
	if t == nil {
		return nil
	}
	out := make([]Alias, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Alias
	}
	return out
}

// ListOwners returns the names of the owners that have aliases.
func (r *Registry) ListOwners() []string {
	var out []string
	for _, t := range r.tables {
		if len(t.entries) > 0 {
			out = append(out, t.owner)
		}
	}
	return out
}

// Len returns the number of aliases defined for owner.
func (r *Registry) Len(owner string) int {
	if t := r.findTable(owner); t != nil {
		return len(t.entries)
	}
	return 0
}

// Clear removes every alias of owner.
func (r *Registry) Clear(owner string) {
	if t := r.findTable(owner); t != nil {
		t.entries = nil
	}
}

// ClearShell removes the shell's own aliases. Other owners are not
// affected.
func (r *Registry) ClearShell() {
	r.Clear(r.shellOwner)
}
