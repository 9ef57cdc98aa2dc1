// metrics.go: Prometheus-backed MetricsCollector implementation.
//
// Grounded on the arena-cache sibling project's pkg/metrics.go sink
// pattern: a small adapter struct wrapping prometheus.CounterVec/
// GaugeVec, registered against a caller-supplied registry.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsCollector reports cache activity as Prometheus
// counters and a load-factor gauge. Construct with
// NewPrometheusMetricsCollector and wire it in via WithMetrics.
type PrometheusMetricsCollector struct {
	hits             prometheus.Counter
	misses           prometheus.Counter
	evictions        prometheus.Counter
	forcedEvictions  prometheus.Counter
	rehashes         *prometheus.CounterVec
	probes           *prometheus.CounterVec
	loadFactor       prometheus.Gauge
}

// NewPrometheusMetricsCollector registers the cache's metrics against
// reg and returns a collector ready to pass to WithMetrics. name is
// used as a label to distinguish multiple Cache instances registered
// against the same registry.
func NewPrometheusMetricsCollector(reg *prometheus.Registry, name string) *PrometheusMetricsCollector {
	labels := prometheus.Labels{"cache": name}

	m := &PrometheusMetricsCollector{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "refbitcache_hits_total",
			Help:        "Number of Access calls that found an existing entry.",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "refbitcache_misses_total",
			Help:        "Number of Access calls that admitted a new entry.",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "refbitcache_evictions_total",
			Help:        "Number of slots retired by the clock sweep.",
			ConstLabels: labels,
		}),
		forcedEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "refbitcache_forced_evictions_total",
			Help:        "Number of Fallback B occurrences: a pinned slot evicted anyway.",
			ConstLabels: labels,
		}),
		rehashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "refbitcache_rehash_total",
			Help:        "Number of key-index growth attempts, labeled by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "refbitcache_probe_steps_total",
			Help:        "Cumulative open-addressing probe steps, labeled by operation.",
			ConstLabels: labels,
		}, []string{"op"}),
		loadFactor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "refbitcache_load_factor",
			Help:        "Current key-index load factor as a percentage.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.hits, m.misses, m.evictions, m.forcedEvictions, m.rehashes, m.probes, m.loadFactor)
	return m
}

func (m *PrometheusMetricsCollector) RecordGet(latencyNanos int64, hit bool) {
	if hit {
		m.hits.Inc()
	} else {
		m.misses.Inc()
	}
}

func (m *PrometheusMetricsCollector) RecordSet(latencyNanos int64) {}

func (m *PrometheusMetricsCollector) RecordDelete(latencyNanos int64) {}

func (m *PrometheusMetricsCollector) RecordEviction() {
	m.evictions.Inc()
}

func (m *PrometheusMetricsCollector) RecordForcedEviction() {
	m.forcedEvictions.Inc()
}

func (m *PrometheusMetricsCollector) RecordRehash(success bool) {
	if success {
		m.rehashes.WithLabelValues("ok").Inc()
	} else {
		m.rehashes.WithLabelValues("failed").Inc()
	}
}

func (m *PrometheusMetricsCollector) RecordProbeCount(n int, op string) {
	m.probes.WithLabelValues(op).Add(float64(n))
}

func (m *PrometheusMetricsCollector) RecordLoadFactor(pct int) {
	m.loadFactor.Set(float64(pct))
}
