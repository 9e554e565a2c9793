// Package history keeps the per-program command histories of the shell.
//
// # Rings
//
// Every History is a fixed-size ring of recorded commands. Two address
// spaces exist and are never mixed:
//
//   - a slot (RingIndex) is a physical position in the ring array;
//   - an ordinal is an age-based command number, 0 being the oldest live
//     command.
//
// SlotToOrdinal and OrdinalToSlot are the only conversions between them.
//
// # Recall
//
// A History tracks the last added slot and the last displayed slot. After
// a command is recorded the next backward recall shows the newest command
// instead of stepping past it. Recall stops at either end; it does not
// wrap.
//
// # Pool
//
// A Store owns a bounded pool of histories. Allocate hands out one per
// program instance:
//
//	store := history.NewStore(history.WithCapacity(50), history.WithMaxHistories(4))
//	h, err := store.Allocate("cmd.exe", 1234)
//	_ = h.Record("dir", false)
//	store.Release(h)
//
// Released histories keep their commands. A later Allocate for the same
// owner name picks them up again; a different owner reclaims the
// least-recently-released one once the pool is full.
package history
