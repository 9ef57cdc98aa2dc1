// cell.go: the value cell — one cached datum plus its pin and clock state.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

// evictedSlot is the sentinel slot_index meaning "no slot references
// this cell" (spec.md §3, invariant V2). A cell reaches this state only
// while refcount >= 1; it is the LIVE_EVICTED state of the cell state
// machine (spec.md §4.3 state machine).
const evictedSlot = -1

// cell is one cached datum. It is not self-locking: every field is
// mutated only while the owning Cache's mutex is held (spec.md §4.1).
type cell struct {
	data      []byte
	refcount  int
	slotIndex int
	refBit    bool
}

// live reports whether the cell still occupies a slot.
func (c *cell) live() bool {
	return c.slotIndex != evictedSlot
}

// newCell copies value into a freshly owned payload, as spec.md §4.1
// requires ("the cache copies the caller's bytes on admission").
func newCell(value []byte, slot int) *cell {
	data := make([]byte, len(value))
	copy(data, value)
	return &cell{
		data:      data,
		refcount:  1,
		slotIndex: slot,
		refBit:    true,
	}
}

// DefaultValueFree is the convenience deallocator named in spec.md §6
// (default_free). Go's garbage collector reclaims the payload's backing
// array implicitly, so this hook is a no-op; it exists for callers
// whose payloads reference external resources (e.g. pooled buffers)
// and supply their own ValueFree via WithValueFree.
func DefaultValueFree([]byte) {}
