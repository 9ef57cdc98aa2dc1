package refbitcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestHotDiagnosticsParseState(t *testing.T) {
	c := mustNew(t, 4)
	defer c.Close()

	hd := &HotDiagnostics{cache: c, state: diagnosticsState{LogLevel: "warn", MetricsOn: true}, baseline: c.metrics()}

	data := map[string]interface{}{
		"diagnostics": map[string]interface{}{
			"log_level": "debug",
			"metrics":   false,
		},
	}
	next := hd.parseState(data)
	if next.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", next.LogLevel)
	}
	if next.MetricsOn {
		t.Errorf("MetricsOn = true, want false")
	}
}

func TestHotDiagnosticsParseStateIgnoresUnknownLevel(t *testing.T) {
	c := mustNew(t, 4)
	defer c.Close()

	hd := &HotDiagnostics{cache: c, state: diagnosticsState{LogLevel: "warn", MetricsOn: true}, baseline: c.metrics()}
	data := map[string]interface{}{
		"diagnostics": map[string]interface{}{
			"log_level": "nonsense",
		},
	}
	next := hd.parseState(data)
	if next.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want unchanged warn for an unrecognized value", next.LogLevel)
	}
}

func TestHotDiagnosticsApplyStateTogglesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsCollector(reg, "hot-test")

	c := mustNew(t, 4, WithMetrics(pm))
	defer c.Close()

	hd := &HotDiagnostics{cache: c, baseline: pm}

	hd.applyState(diagnosticsState{MetricsOn: false})
	if _, ok := c.metrics().(NoOpMetricsCollector); !ok {
		t.Fatalf("metrics should be disabled after MetricsOn=false")
	}

	hd.applyState(diagnosticsState{MetricsOn: true})
	if c.metrics() != MetricsCollector(pm) {
		t.Fatalf("metrics should be restored to the baseline collector after MetricsOn=true")
	}
}

// This does not exercise Argus's file-polling loop (inherently timing
// dependent); it only confirms construction wires up correctly against
// a real config file and that a second Start is a no-op.
func TestNewHotDiagnosticsConstructsWatcher(t *testing.T) {
	c := mustNew(t, 4)
	defer c.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "diagnostics.json")
	if err := os.WriteFile(path, []byte(`{"diagnostics":{"log_level":"warn","metrics":true}}`), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	hd, err := NewHotDiagnostics(c, HotDiagnosticsOptions{ConfigPath: path})
	if err != nil {
		t.Fatalf("NewHotDiagnostics failed: %v", err)
	}
	defer hd.Stop()

	if err := hd.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := hd.Start(); err != nil {
		t.Fatalf("second Start should be a no-op, got: %v", err)
	}
}

func TestNewHotDiagnosticsRequiresConfigPath(t *testing.T) {
	c := mustNew(t, 4)
	defer c.Close()

	if _, err := NewHotDiagnostics(c, HotDiagnosticsOptions{}); err == nil {
		t.Fatalf("NewHotDiagnostics with empty ConfigPath should fail")
	}
}
