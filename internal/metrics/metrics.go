// Package metrics holds the Prometheus collectors for the collection
// pipeline, exposed by the HTTP server's /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles all stockpulse metrics.
type Collector struct {
	FetchDuration  prometheus.Histogram
	SourceItems    *prometheus.CounterVec
	SourceFailures *prometheus.CounterVec
	DedupeDropped  prometheus.Counter
	FetchesTotal   prometheus.Counter
}

// NewCollector creates and registers all collectors against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockpulse_fetch_duration_seconds",
			Help:    "Duration of one full pipeline fetch in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		SourceItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpulse_source_items_total",
			Help: "Items collected per platform, synthetic fallback included",
		}, []string{"platform", "status"}),
		SourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockpulse_source_failures_total",
			Help: "Degraded or unavailable source outcomes per platform",
		}, []string{"platform"}),
		DedupeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockpulse_dedupe_dropped_total",
			Help: "Items dropped by cross-source deduplication",
		}),
		FetchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockpulse_fetches_total",
			Help: "Completed pipeline fetches",
		}),
	}
	reg.MustRegister(c.FetchDuration, c.SourceItems, c.SourceFailures, c.DedupeDropped, c.FetchesTotal)
	return c
}

// ObserveFetch records one completed pipeline run.
func (c *Collector) ObserveFetch(d time.Duration) {
	if c == nil {
		return
	}
	c.FetchesTotal.Inc()
	c.FetchDuration.Observe(d.Seconds())
}

// RecordSource records one adapter outcome.
func (c *Collector) RecordSource(platform, status string, items int) {
	if c == nil {
		return
	}
	c.SourceItems.WithLabelValues(platform, status).Add(float64(items))
	if status != "ok" {
		c.SourceFailures.WithLabelValues(platform).Inc()
	}
}

// RecordDedupeDropped records items removed by the dedupe stage.
func (c *Collector) RecordDedupeDropped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.DedupeDropped.Add(float64(n))
}
