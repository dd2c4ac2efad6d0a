package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-almanac/internal/metrics"
)

type stubProvider struct {
	observations []DailyObservation
	err          error
	got          DailyQuery
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchDaily(_ context.Context, q DailyQuery) ([]DailyObservation, error) {
	p.got = q
	return p.observations, p.err
}

func testWindow(t *testing.T) DateWindow {
	t.Helper()
	w, err := ParseWindow("1940-01-01", "2024-12-31")
	require.NoError(t, err)
	return w
}

func TestServiceSummarize(t *testing.T) {
	p := &stubProvider{observations: []DailyObservation{
		{Date: day(2021, time.March, 15), WeatherCode: code(0)},
		{Date: day(1999, time.March, 15), WeatherCode: code(61)},
	}}
	collector := metrics.NewCollector("test", prometheus.NewRegistry())
	svc := NewService(p, testWindow(t), nil, collector)

	loc := Location{Latitude: 40.4, Longitude: -3.7}
	got, err := svc.Summarize(context.Background(), loc)
	require.NoError(t, err)

	assert.Equal(t, loc, p.got.Location)
	assert.Equal(t, svc.Window(), p.got.Window)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Total())
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.ObservationsTotal))
}

func TestServiceSummarizeProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("upstream unreachable")}
	collector := metrics.NewCollector("test", prometheus.NewRegistry())
	svc := NewService(p, testWindow(t), nil, collector)

	_, err := svc.Summarize(context.Background(), Location{Latitude: 999})
	require.Error(t, err)
	assert.Equal(t, KindProvider, KindOf(err))
	assert.Contains(t, err.Error(), "upstream unreachable")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.PipelineErrors.WithLabelValues("provider")))
}

func TestServiceSummarizeAggregationError(t *testing.T) {
	p := &stubProvider{observations: []DailyObservation{{WeatherCode: code(1)}}}
	svc := NewService(p, testWindow(t), nil, nil)

	_, err := svc.Summarize(context.Background(), Location{})
	require.Error(t, err)
	assert.Equal(t, KindAggregation, KindOf(err))
}

func TestServiceWithoutProvider(t *testing.T) {
	svc := NewService(nil, DateWindow{}, nil, nil)
	_, err := svc.Summarize(context.Background(), Location{})
	assert.Equal(t, KindProvider, KindOf(err))
}

func TestParseWindow(t *testing.T) {
	_, err := ParseWindow("2024-12-31", "1940-01-01")
	assert.Error(t, err)

	_, err = ParseWindow("1940-13-01", "2024-12-31")
	assert.Error(t, err)

	w, err := ParseWindow("1940-01-01", "1940-01-01")
	require.NoError(t, err)
	assert.True(t, w.Start.Equal(w.End))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Nil(t, NewError(KindProvider, nil))

	wrapped := errors.Join(errors.New("context"), NewError(KindValidation, errors.New("bad")))
	assert.Equal(t, KindValidation, KindOf(wrapped))
}
