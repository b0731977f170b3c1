package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestCollector_RecordSource(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSource("X", "ok", 12)
	c.RecordSource("Reddit", "unavailable", 5)

	items := gather(t, reg, "stockpulse_source_items_total")
	require.NotNil(t, items)
	assert.Len(t, items.GetMetric(), 2)

	failures := gather(t, reg, "stockpulse_source_failures_total")
	require.NotNil(t, failures)
	require.Len(t, failures.GetMetric(), 1, "only the degraded source counts as a failure")
	assert.Equal(t, 1.0, failures.GetMetric()[0].GetCounter().GetValue())
}

func TestCollector_ObserveFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveFetch(2 * time.Second)
	c.ObserveFetch(500 * time.Millisecond)

	total := gather(t, reg, "stockpulse_fetches_total")
	require.NotNil(t, total)
	assert.Equal(t, 2.0, total.GetMetric()[0].GetCounter().GetValue())

	dur := gather(t, reg, "stockpulse_fetch_duration_seconds")
	require.NotNil(t, dur)
	assert.Equal(t, uint64(2), dur.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	// Pipeline may run without metrics wired; nil receivers must be no-ops.
	c.ObserveFetch(time.Second)
	c.RecordSource("X", "ok", 1)
	c.RecordDedupeDropped(3)
}
