// config.go: configuration for refbitcache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

import (
	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for the cache. Capacity is the
// one required, fail-fast field (spec.md §6 create); everything else is
// clamped to a sane default rather than rejected, matching the teacher
// library's Validate() posture.
type Config struct {
	// Capacity is the fixed number of slots in the cache. Must be > 0.
	// Unlike every other field, this is not defaulted on invalid input:
	// New returns an error instead.
	Capacity int

	// InitialIndexSize overrides the initial key-index size H. If <= 0,
	// it defaults to nextPrime(DefaultIndexSizeFactor * Capacity). A
	// caller-supplied value smaller than that floor is raised to it, and
	// a larger one is rounded up to the next prime;
	// H must always be large enough for the 0.7 load-factor invariant
	// to hold at C entries.
	InitialIndexSize int

	// ValueFree is invoked exactly once per payload at the payload's
	// death (on retire with refcount=0, on release bringing a LIVE_EVICTED
	// cell's refcount to 0, or on Close). If nil, DefaultValueFree is used.
	ValueFree func([]byte)

	// Logger is used for diagnostic events (hits, misses, evictions,
	// warnings). If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider supplies the timestamp in PrintState snapshots. There
	// is no TTL in this cache; this is a diagnostic convenience only. If
	// nil, a default implementation is used.
	TimeProvider TimeProvider

	// MetricsCollector receives hit/miss/eviction/rehash counters.
	// If nil, NoOpMetricsCollector is used (zero overhead). Default:
	// NoOpMetricsCollector. Wire a PrometheusMetricsCollector via
	// WithMetrics to integrate with Prometheus.
	MetricsCollector MetricsCollector
}

// Option configures a Config when passed to New.
type Option func(*Config)

// WithLogger injects a Logger. See Config.Logger.
func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics injects a MetricsCollector. See Config.MetricsCollector.
func WithMetrics(m MetricsCollector) Option {
	return func(c *Config) { c.MetricsCollector = m }
}

// WithValueFree overrides the per-payload destructor. See Config.ValueFree.
func WithValueFree(f func([]byte)) Option {
	return func(c *Config) { c.ValueFree = f }
}

// WithInitialIndexSize pre-sizes the key index above the spec's default
// floor of nextPrime(2*Capacity). Useful when the caller's workload
// churns keys heavily and wants to avoid early rehashes.
func WithInitialIndexSize(size int) Option {
	return func(c *Config) { c.InitialIndexSize = size }
}

// Validate applies sensible defaults to every field except Capacity,
// which is returned as an error if it is not positive.
//
// Default values applied:
//   - InitialIndexSize: nextPrime(DefaultIndexSizeFactor * Capacity) if <= 0
//     or smaller than that floor; otherwise rounded up to nextPrime
//   - ValueFree: DefaultValueFree if nil
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return NewErrInvalidCapacity(c.Capacity)
	}

	floor := nextPrime(DefaultIndexSizeFactor * c.Capacity)
	if c.InitialIndexSize <= 0 || c.InitialIndexSize < floor {
		c.InitialIndexSize = floor
	} else {
		c.InitialIndexSize = nextPrime(c.InitialIndexSize)
	}

	if c.ValueFree == nil {
		c.ValueFree = DefaultValueFree
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults for every
// field except Capacity, which the caller must still set.
func DefaultConfig() Config {
	return Config{
		ValueFree:        DefaultValueFree,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider, using go-timecache.
// This provides ~121x faster time access compared to time.Now() with
// zero allocations — fine for logging timestamps, since this cache has
// no TTL and therefore no latency-sensitive time arithmetic.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
