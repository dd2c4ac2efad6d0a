package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorRecords(t *testing.T) {
	c := NewCollector("test", prometheus.NewRegistry())

	c.RecordAPIRequest("/weather/", "200", 10*time.Millisecond)
	c.RecordAPIRequest("/weather/", "200", 20*time.Millisecond)
	c.RecordCacheLookup("hit")
	c.RecordRetry("openmeteo-archive")
	c.RecordProviderFetch("openmeteo-archive", errors.New("boom"), time.Second)
	c.RecordAggregation(10, 3)
	c.RecordPipelineError("")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.APIRequestsTotal.WithLabelValues("/weather/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ProviderRetriesTotal.WithLabelValues("openmeteo-archive")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.ObservationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PipelineErrors.WithLabelValues("unclassified")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordAPIRequest("/weather/", "200", time.Millisecond)
		c.RecordProviderFetch("p", nil, time.Millisecond)
		c.RecordRetry("p")
		c.RecordCacheLookup("miss")
		c.RecordAggregation(1, 1)
		c.RecordPipelineError("provider")
	})
}
