package session

import "github.com/dshills/keyline/internal/history"

// OwnerRegistry resolves a client process to the name of the program it
// runs. The name keys both the command history and the alias table.
type OwnerRegistry interface {
	Owner(pid history.ProcessID) (string, bool)
}

// StaticOwners is an OwnerRegistry backed by a map.
type StaticOwners map[history.ProcessID]string

// Owner implements OwnerRegistry.
func (s StaticOwners) Owner(pid history.ProcessID) (string, bool) {
	name, ok := s[pid]
	return name, ok
}

// SingleOwner maps every process to one owner name.
type SingleOwner string

// Owner implements OwnerRegistry.
func (s SingleOwner) Owner(history.ProcessID) (string, bool) {
	return string(s), s != ""
}

var (
	_ OwnerRegistry = StaticOwners(nil)
	_ OwnerRegistry = SingleOwner("")
)
