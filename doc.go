// Package refbitcache provides a fixed-capacity, thread-safe, in-memory
// cache keyed by string, built for resource-constrained multi-tasking
// environments.
//
// # Overview
//
// refbitcache admits opaque byte payloads under an exact-match string key.
// On a miss it evicts a victim using a Clock-with-Reference-Bit policy: a
// hand sweeps the fixed slot array, giving each entry a second chance before
// eviction, while entries held by callers (pinned via a reference count)
// are never freed out from under their holder, even after they have been
// evicted from their slot.
//
// # Quick start
//
//	c, err := refbitcache.New(1024)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	h, _ := c.Access("user:123", []byte("payload"))
//	defer h.Release()
//	fmt.Println(string(h.Value()))
//
// # Eviction policy
//
//   - The clock hand sweeps slots looking for an unpinned, unreferenced
//     victim.
//   - Referenced entries (ref_bit = 1) get a second chance: the bit is
//     cleared and the hand advances.
//   - Pinned entries (refcount > 0) also have their reference bit cleared
//     during a sweep, but the pin, not the bit, is what protects them.
//   - A victim that is still pinned at retirement time is detached from its
//     slot (slot_index = EVICTED) rather than freed; it is freed when its
//     last holder releases it.
//
// # Concurrency
//
// A single mutex per Cache guards every mutation of the slot array, the key
// index, the clock hand, and per-cell bookkeeping. Access, Release, and
// Close each acquire the mutex on entry and release it on every exit path,
// including allocation-failure paths. There are no background goroutines.
//
// # Configuration
//
// Cache behavior beyond the mandatory capacity is controlled through
// functional options: WithLogger, WithMetrics, WithValueFree, and
// WithInitialIndexSize. See Config for the full set of tunables and their
// defaults.
//
// # Observability
//
// A Logger interface receives one diagnostic line per hit, per admission
// (with the victim slot), and per warning (forced eviction of a pinned
// slot, allocation failure, held cell at Close). A MetricsCollector
// interface can be wired to a *prometheus.Registry via WithMetrics for
// hit/miss/eviction/rehash counters, or left as the zero-overhead default.
//
// # Non-goals
//
// refbitcache does not persist data, does not support TTL or size-in-bytes
// accounting, does not shard across cores, does not cache negative results,
// does not evict asynchronously, has no iterator API, and does not support
// resizing the slot array after creation — only the key index grows.
package refbitcache
