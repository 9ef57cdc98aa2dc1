// hot-reload.go: dynamic ambient-setting reload with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotDiagnostics watches a configuration file and reloads the cache's
// ambient diagnostic settings without touching capacity: whether metrics
// recording is enabled is applied to the cache; the log level is only
// recorded in State and passed to OnReload, and does not change the
// cache's Logger. spec.md's Non-goals
// forbid resizing the slot array after creation, so Capacity is
// deliberately absent from the set of keys this type will ever parse.
type HotDiagnostics struct {
	cache    *Cache
	watcher  *argus.Watcher
	mu       sync.RWMutex
	state    diagnosticsState
	baseline MetricsCollector // the collector wired at cache construction

	// OnReload is called after the diagnostics state is successfully
	// reloaded. Optional; must be fast and non-blocking.
	OnReload func(old, new diagnosticsState)
}

// diagnosticsState is the subset of Config this type is allowed to
// mutate at runtime.
type diagnosticsState struct {
	LogLevel      string // "debug", "info", "warn", "error", "off"
	MetricsOn     bool
}

// HotDiagnosticsOptions configures hot reload behavior.
type HotDiagnosticsOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after the diagnostics state is reloaded.
	OnReload func(old, new diagnosticsState)

	// Logger for hot reload operations. If nil, uses NoOpLogger.
	Logger Logger
}

// NewHotDiagnostics creates a hot-reloadable diagnostics watcher for a
// running cache. It starts watching the configuration file immediately.
//
// Example configuration file (YAML):
//
//	diagnostics:
//	  log_level: "warn"
//	  metrics: true
//
// Supported configuration keys:
//   - diagnostics.log_level (string): one of debug/info/warn/error/off
//   - diagnostics.metrics (bool): whether metrics recording is active
//
// Note: Capacity cannot be reloaded. Changing the number of slots
// requires constructing a new *Cache.
func NewHotDiagnostics(cache *Cache, opts HotDiagnosticsOptions) (*HotDiagnostics, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hd := &HotDiagnostics{
		cache:    cache,
		OnReload: opts.OnReload,
		state:    diagnosticsState{LogLevel: "warn", MetricsOn: true},
		baseline: cache.metrics(),
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hd.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hd.watcher = watcher

	return hd, nil
}

// Start begins watching the configuration file for changes.
func (hd *HotDiagnostics) Start() error {
	if hd.watcher.IsRunning() {
		return nil
	}
	return hd.watcher.Start()
}

// Stop stops watching the configuration file.
func (hd *HotDiagnostics) Stop() error {
	return hd.watcher.Stop()
}

// State returns the current diagnostics state (thread-safe).
func (hd *HotDiagnostics) State() diagnosticsState {
	hd.mu.RLock()
	defer hd.mu.RUnlock()
	return hd.state
}

// handleConfigChange is called by Argus when the configuration file changes.
func (hd *HotDiagnostics) handleConfigChange(configData map[string]interface{}) {
	hd.mu.Lock()
	old := hd.state
	next := hd.parseState(configData)
	hd.state = next
	hd.mu.Unlock()

	hd.applyState(next)

	if hd.OnReload != nil {
		hd.OnReload(old, next)
	}
}

// parseState extracts diagnostics settings from Argus config data.
func (hd *HotDiagnostics) parseState(data map[string]interface{}) diagnosticsState {
	state := hd.State()

	section, ok := data["diagnostics"].(map[string]interface{})
	if !ok {
		if _, hasLevel := data["log_level"]; hasLevel {
			section = data
		} else {
			return state
		}
	}

	if level, ok := section["log_level"].(string); ok {
		switch level {
		case "debug", "info", "warn", "error", "off":
			state.LogLevel = level
		}
	}

	if on, ok := section["metrics"].(bool); ok {
		state.MetricsOn = on
	}

	return state
}

// applyState swaps the cache's metrics collector between the one
// supplied at construction and NoOpMetricsCollector, depending on the
// reloaded MetricsOn flag. Log-level gating is left to the Logger
// implementation the caller wired in (most structured loggers, like the
// ZapLogger adapter, already expose their own level control).
func (hd *HotDiagnostics) applyState(state diagnosticsState) {
	if state.MetricsOn {
		hd.cache.setMetrics(hd.baseline)
	} else {
		hd.cache.setMetrics(NoOpMetricsCollector{})
	}
}
