package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	// Must not panic.
	m.ObserveOperation("product", "getById", time.Now(), nil)
	m.CacheEvent("hit")
}

func TestCacheEventCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheEvent("hit")
	m.CacheEvent("hit")
	m.CacheEvent("miss")

	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("hit")); got != 2 {
		t.Errorf("hit count: want 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss count: want 1, got %v", got)
	}
}

func TestObserveOperationOutcomeLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOperation("product", "create", time.Now(), nil)
	m.ObserveOperation("product", "create", time.Now(), errors.New("boom"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != "menuhub_operation_duration_seconds" {
			continue
		}
		outcomes := make(map[string]bool)
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "outcome" {
					outcomes[l.GetValue()] = true
				}
			}
		}
		if !outcomes["ok"] || !outcomes["error"] {
			t.Errorf("expected both ok and error outcomes, got %v", outcomes)
		}
		return
	}
	t.Error("operation duration metric not found")
}
