package refbitcache

import "testing"

func TestConfigValidateRejectsNonPositiveCapacity(t *testing.T) {
	cfg := Config{Capacity: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() with Capacity=0 should fail")
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{Capacity: 4}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Logger == nil {
		t.Fatalf("Logger should default to NoOpLogger")
	}
	if cfg.TimeProvider == nil {
		t.Fatalf("TimeProvider should default to systemTimeProvider")
	}
	if cfg.MetricsCollector == nil {
		t.Fatalf("MetricsCollector should default to NoOpMetricsCollector")
	}
	if cfg.ValueFree == nil {
		t.Fatalf("ValueFree should default to DefaultValueFree")
	}
	want := nextPrime(DefaultIndexSizeFactor * 4)
	if cfg.InitialIndexSize != want {
		t.Fatalf("InitialIndexSize = %d, want %d", cfg.InitialIndexSize, want)
	}
}

func TestConfigValidateRaisesTooSmallIndexSize(t *testing.T) {
	cfg := Config{Capacity: 16, InitialIndexSize: 3}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	floor := nextPrime(DefaultIndexSizeFactor * 16)
	if cfg.InitialIndexSize != floor {
		t.Fatalf("InitialIndexSize = %d, want floor %d (I2 requires H >= nextPrime(2*C))", cfg.InitialIndexSize, floor)
	}
}

func TestWithOptions(t *testing.T) {
	var freed bool
	c, err := New(4,
		WithLogger(NoOpLogger{}),
		WithMetrics(NoOpMetricsCollector{}),
		WithValueFree(func([]byte) { freed = true }),
		WithInitialIndexSize(101),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.cfg.InitialIndexSize != 101 {
		t.Fatalf("InitialIndexSize = %d, want 101", c.cfg.InitialIndexSize)
	}

	h, _ := c.Access("k", []byte("v"))
	h.Release()
	c.Close()
	if !freed {
		t.Fatalf("custom ValueFree was never invoked")
	}
}
