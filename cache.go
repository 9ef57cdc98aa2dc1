// cache.go: the cache facade — owns the mutex, the slot array, the
// clock hand, and the key index; sequences access/release/destroy.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Cache is a fixed-capacity, thread-safe, in-memory cache keyed by
// string, evicting via a Clock-with-Reference-Bit policy (spec.md §2).
// A Cache must be created with New and released with Close.
type Cache struct {
	mu sync.Mutex

	capacity int
	occupied []bool
	keys     []string
	cells    []*cell
	hand     int
	index    *keyIndex

	cfg   Config
	stats CacheStats
}

// Handle is an outstanding reference to a cell returned by Access.
// Holding a Handle pins the cell: the cache will never free it while
// the Handle has not been released, even if the cell is evicted from
// its slot in the meantime (spec.md's evict-but-keep-alive protocol).
type Handle struct {
	cache *Cache
	cell  *cell
}

// New creates a cache of the given fixed capacity. capacity must be
// positive; every other tunable is supplied via Option and defaulted
// by Config.Validate if omitted (spec.md §6 create).
func New(capacity int, opts ...Option) (*Cache, error) {
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache{
		capacity: cfg.Capacity,
		occupied: make([]bool, cfg.Capacity),
		keys:     make([]string, cfg.Capacity),
		cells:    make([]*cell, cfg.Capacity),
		index:    newKeyIndex(cfg.InitialIndexSize),
		cfg:      cfg,
		stats: CacheStats{
			Capacity:  cfg.Capacity,
			IndexSize: cfg.InitialIndexSize,
		},
	}
	return c, nil
}

// Value returns the cell's payload bytes. The returned slice must not
// be mutated: the cache guarantees it never mutates payload bytes after
// admission, and other holders may be reading concurrently.
func (h *Handle) Value() []byte {
	return h.cell.data
}

// Access looks the key up in the index; on a hit it bumps the cell's
// refcount and sets its reference bit and returns a new handle to the
// existing cell.
// On a miss it sweeps for a victim, retires it, and admits a fresh
// entry built from value, returning a handle with refcount=1. It
// returns (nil, false) only when admission fails to allocate (spec.md
// §4.4 access).
func (c *Cache) Access(key string, value []byte) (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, hit, probes := c.index.lookup(key)
	c.cfg.MetricsCollector.RecordProbeCount(probes, "lookup")

	if hit && c.occupied[slot] {
		cv := c.cells[slot]
		cv.refcount++
		cv.refBit = true
		c.stats.Hits++
		c.cfg.MetricsCollector.RecordGet(0, true)
		c.cfg.Logger.Debug("RefBitClockCache cache hit", "key", key, "slot", slot)
		return &Handle{cache: c, cell: cv}, true
	}

	victim := c.findVictim()
	c.retire(victim)
	cv := c.admit(key, value, victim)

	c.stats.Misses++
	c.cfg.MetricsCollector.RecordGet(0, false)
	c.cfg.Logger.Debug("RefBitClockCache cache miss", "key", key, "admitted_slot", victim, "victim", victim)

	return &Handle{cache: c, cell: cv}, true
}

// Release decrements the handle's refcount. If the refcount reaches
// zero and the cell has already been evicted from its slot, the cell is
// freed now (spec.md §4.4 release). Release is nil-safe and idempotent:
// calling it more than once on the same handle, or on a nil handle, is
// a no-op beyond the first call.
func (h *Handle) Release() {
	if h == nil || h.cell == nil {
		return
	}
	c := h.cache
	c.mu.Lock()
	defer c.mu.Unlock()

	cv := h.cell
	h.cell = nil // idempotence: a second Release call sees cell==nil and returns above

	if cv.refcount <= 0 {
		return
	}
	cv.refcount--
	c.cfg.MetricsCollector.RecordDelete(0)
	if cv.refcount == 0 && !cv.live() {
		c.cfg.ValueFree(cv.data)
	}
}

// findVictim implements spec.md §4.3's find_victim algorithm: two clock
// passes giving every referenced/pinned slot a second chance, Fallback
// A (scan for any empty slot), then Fallback B (force-evict the slot
// named by the hand at entry, which is only reachable when every slot
// is pinned).
func (c *Cache) findVictim() int {
	startHand := c.hand
	limit := 2 * c.capacity

	for attempts := 0; attempts < limit; {
		i := c.hand
		if !c.occupied[i] {
			c.hand = (i + 1) % c.capacity
			return i
		}
		cv := c.cells[i]
		if cv.refcount == 0 && !cv.refBit {
			c.hand = (i + 1) % c.capacity
			return i
		}
		cv.refBit = false
		c.hand = (i + 1) % c.capacity
		attempts++
	}

	// Fallback A: scan for any empty slot.
	for i := 0; i < c.capacity; i++ {
		if !c.occupied[i] {
			return i
		}
	}

	// Fallback B: force eviction of the slot at the hand on entry.
	c.cfg.Logger.Warn("RefBitClockCache no unpinned victim, forcing eviction", "slot", startHand)
	c.cfg.MetricsCollector.RecordForcedEviction()
	c.stats.ForcedEvictions++
	return startHand
}

// retire implements spec.md §4.3's retire(i): erase the slot's key
// from the index and clear the slot; then free the cell if it is
// idle, or detach it (slot_index = EVICTED) if it is still pinned, so
// the cell continues to live until its last holder releases it.
func (c *Cache) retire(i int) {
	if !c.occupied[i] {
		return
	}

	key := c.keys[i]
	probes := c.index.erase(key)
	c.cfg.MetricsCollector.RecordProbeCount(probes, "erase")

	c.occupied[i] = false
	c.keys[i] = ""

	cv := c.cells[i]
	c.cells[i] = nil

	if cv.refcount == 0 {
		c.cfg.ValueFree(cv.data)
	} else {
		cv.slotIndex = evictedSlot
		c.cfg.Logger.Warn("RefBitClockCache forced eviction of pinned slot", "slot", i, "key", key)
	}

	c.stats.Evictions++
	c.cfg.MetricsCollector.RecordEviction()
}

// admit implements spec.md §4.3's admission: duplicate the key, copy
// the value into a fresh cell with refcount=1 and ref_bit=1, install
// both into the slot arrays, and index-insert the pair.
func (c *Cache) admit(key string, value []byte, slot int) *cell {
	if c.index.needsGrow() {
		oldSize := len(c.index.entries)
		if c.index.rehash() {
			c.stats.Rehashes++
			c.cfg.MetricsCollector.RecordRehash(true)
			c.stats.IndexSize = len(c.index.entries)
		} else {
			c.cfg.MetricsCollector.RecordRehash(false)
			c.cfg.Logger.Warn("RefBitClockCache rehash failed, keeping old table", "old_size", oldSize)
		}
	}

	cv := newCell(value, slot)
	c.keys[slot] = key
	c.occupied[slot] = true
	c.cells[slot] = cv

	probes := c.index.insert(c.keys[slot], slot)
	c.cfg.MetricsCollector.RecordProbeCount(probes, "insert")
	c.cfg.MetricsCollector.RecordSet(0)
	c.stats.IndexUsed = c.index.used
	c.cfg.MetricsCollector.RecordLoadFactor(c.index.loadFactorPct())

	return cv
}

// Close implements spec.md §4.4's destroy: every occupied slot is
// erased from the index and its key freed; every remaining cell is
// freed, even if still pinned (a warning is emitted in that case — the
// contract is that callers must release all handles before Close).
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < c.capacity; i++ {
		if !c.occupied[i] {
			continue
		}
		key := c.keys[i]
		c.index.erase(key)
		c.occupied[i] = false
		c.keys[i] = ""

		cv := c.cells[i]
		c.cells[i] = nil
		if cv.refcount > 0 {
			c.cfg.Logger.Warn("RefBitClockCache held cell at close", "slot", i, "key", key,
				"refcount", cv.refcount, "error", NewErrHeldAtClose(i, key, cv.refcount))
		}
		c.cfg.ValueFree(cv.data)
	}
}

// Stats returns a snapshot of the cache's observability counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = c.occupiedCount()
	s.IndexUsed = c.index.used
	s.IndexSize = len(c.index.entries)
	s.ClockHand = c.hand
	return s
}

func (c *Cache) occupiedCount() int {
	n := 0
	for _, ok := range c.occupied {
		if ok {
			n++
		}
	}
	return n
}

// PrintState writes a diagnostic snapshot of every occupied slot,
// formatted as spec.md §6 specifies: "[i: key, ref=R, bit=B]", followed
// by the current clock hand.
func (c *Cache) PrintState(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(w, "RefBitClockCache state @ %d\n", c.cfg.TimeProvider.Now())
	for i := 0; i < c.capacity; i++ {
		if !c.occupied[i] {
			continue
		}
		cv := c.cells[i]
		bit := 0
		if cv.refBit {
			bit = 1
		}
		fmt.Fprintf(w, "[%d: %s, ref=%d, bit=%d]\n", i, c.keys[i], cv.refcount, bit)
	}
	fmt.Fprintf(w, "hand=%d\n", c.hand)
}

// DebugSnapshotHandler returns an http.Handler serving the cache's
// current CacheStats as JSON, the endpoint refbitcache-inspect polls
// (GET /debug/refbitcache/snapshot). It holds the mutex only for the
// duration of Stats(); it never drives cache workload.
func (c *Cache) DebugSnapshotHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Stats())
	})
}

// metrics returns the collector currently wired into the cache.
// Used by HotDiagnostics to remember the caller's original collector.
func (c *Cache) metrics() MetricsCollector {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.MetricsCollector
}

// setMetrics swaps the cache's metrics collector. Used by
// HotDiagnostics to toggle metrics recording on/off at runtime, without
// touching Capacity or any other structural setting.
func (c *Cache) setMetrics(m MetricsCollector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m == nil {
		m = NoOpMetricsCollector{}
	}
	c.cfg.MetricsCollector = m
}
