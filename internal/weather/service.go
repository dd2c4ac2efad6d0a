package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/metrics"
)

// Service runs the fetch, classify and aggregate pipeline against a Provider.
type Service struct {
	provider Provider
	window   DateWindow
	logger   *zap.Logger
	metrics  *metrics.Collector
}

// NewService creates a new Service. A nil logger is replaced by a no-op logger;
// a nil collector disables metrics.
func NewService(provider Provider, window DateWindow, logger *zap.Logger, collector *metrics.Collector) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		window:   window,
		logger:   logger,
		metrics:  collector,
	}
}

// Window returns the date range requested from the provider.
func (s *Service) Window() DateWindow {
	return s.window
}

// Summarize fetches the daily series for loc and returns per-calendar-day condition counts.
// Returned errors are tagged with an ErrorKind.
func (s *Service) Summarize(ctx context.Context, loc Location) ([]AggregationRecord, error) {
	if s.provider == nil {
		err := NewError(KindProvider, errors.New("no weather provider configured"))
		s.metrics.RecordPipelineError(string(KindProvider))
		return nil, err
	}

	start := time.Now()
	observations, err := s.provider.FetchDaily(ctx, DailyQuery{Location: loc, Window: s.window})
	s.metrics.RecordProviderFetch(s.provider.Name(), err, time.Since(start))
	if err != nil {
		if KindOf(err) == "" {
			err = NewError(KindProvider, err)
		}
		s.fail(loc, err)
		return nil, err
	}

	records, err := Aggregate(observations)
	if err != nil {
		s.fail(loc, err)
		return nil, err
	}

	s.metrics.RecordAggregation(len(observations), len(records))
	s.logger.Debug("summarized location",
		zap.String("location", loc.Key()),
		zap.String("provider", s.provider.Name()),
		zap.Int("observations", len(observations)),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

func (s *Service) fail(loc Location, err error) {
	kind := KindOf(err)
	s.metrics.RecordPipelineError(string(kind))
	s.logger.Warn("summarize failed",
		zap.String("location", loc.Key()),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
}

// ParseWindow parses two YYYY-MM-DD dates into a DateWindow.
func ParseWindow(start, end string) (DateWindow, error) {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return DateWindow{}, fmt.Errorf("invalid start date: %w", err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return DateWindow{}, fmt.Errorf("invalid end date: %w", err)
	}
	if e.Before(s) {
		return DateWindow{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateWindow{Start: s, End: e}, nil
}
