package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection.
// All recording methods are safe to call on a nil *Collector.
type Collector struct {
	// API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Provider metrics
	ProviderFetchDuration *prometheus.HistogramVec
	ProviderRetriesTotal  *prometheus.CounterVec
	CacheLookupsTotal     *prometheus.CounterVec

	// Pipeline metrics
	ObservationsTotal prometheus.Counter
	RecordsEmitted    prometheus.Histogram
	PipelineErrors    *prometheus.CounterVec
}

// NewCollector registers the collector's metrics on reg under namespace.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by route and status",
			},
			[]string{"route", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"route"},
		),

		ProviderFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_fetch_duration_seconds",
				Help:      "Duration of provider fetches in seconds",
				Buckets:   []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider", "outcome"},
		),

		ProviderRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_retries_total",
				Help:      "Total number of retried provider requests",
			},
			[]string{"provider"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Response cache lookups by result",
			},
			[]string{"result"}, // "hit", "miss", "error"
		),

		ObservationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observations_aggregated_total",
				Help:      "Total number of daily observations aggregated",
			},
		),

		RecordsEmitted: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_records",
				Help:      "Number of month/day records per response",
				Buckets:   []float64{1, 31, 92, 183, 366},
			},
		),

		PipelineErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_errors_total",
				Help:      "Total number of pipeline errors by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordAPIRequest records a finished API request.
func (c *Collector) RecordAPIRequest(route, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.APIRequestsTotal.WithLabelValues(route, status).Inc()
	c.APIRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordProviderFetch records one provider fetch.
func (c *Collector) RecordProviderFetch(provider string, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.ProviderFetchDuration.WithLabelValues(provider, outcome).Observe(elapsed.Seconds())
}

// RecordRetry counts one retried provider request.
func (c *Collector) RecordRetry(provider string) {
	if c == nil {
		return
	}
	c.ProviderRetriesTotal.WithLabelValues(provider).Inc()
}

// RecordCacheLookup counts one response cache lookup.
func (c *Collector) RecordCacheLookup(result string) {
	if c == nil {
		return
	}
	c.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordAggregation records the size of one aggregation run.
func (c *Collector) RecordAggregation(observations, records int) {
	if c == nil {
		return
	}
	c.ObservationsTotal.Add(float64(observations))
	c.RecordsEmitted.Observe(float64(records))
}

// RecordPipelineError counts a failed pipeline run by error kind.
func (c *Collector) RecordPipelineError(kind string) {
	if c == nil {
		return
	}
	if kind == "" {
		kind = "unclassified"
	}
	c.PipelineErrors.WithLabelValues(kind).Inc()
}
