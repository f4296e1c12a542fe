// Package metrics holds the timing and cache counters shared by the manager
// aggregate. A nil *Metrics is a valid no-op receiver so library users who do
// not care about instrumentation pay nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	opDuration  *prometheus.HistogramVec
	cacheEvents *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "menuhub_operation_duration_seconds",
			Help:    "Duration of manager operations by manager, operation and outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"manager", "operation", "outcome"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "menuhub_cache_events_total",
			Help: "Cache events by kind (hit, miss, write, eviction).",
		}, []string{"event"}),
	}
	if reg != nil {
		reg.MustRegister(m.opDuration, m.cacheEvents)
	}
	return m
}

// ObserveOperation records one manager call. outcome is "ok" or "error".
func (m *Metrics) ObserveOperation(manager, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.opDuration.WithLabelValues(manager, operation, outcome).Observe(time.Since(start).Seconds())
}

func (m *Metrics) CacheEvent(event string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(event).Inc()
}
