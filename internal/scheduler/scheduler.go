package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/weather"
)

// Summarizer is the part of weather.Service the warm-up job needs.
type Summarizer interface {
	Summarize(ctx context.Context, loc weather.Location) ([]weather.AggregationRecord, error)
}

// Scheduler periodically runs the pipeline for configured locations so their
// provider responses stay in the response cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Summarizer
	locations []weather.Location
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler. timeout bounds each location's run.
func New(locations []weather.Location, interval, timeout time.Duration, service Summarizer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the warm-up job, runs it once immediately and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("scheduler: no warm-up locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	s.logger.Info("scheduler: running cache warm-up", zap.Int("locations", len(s.locations)))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx := context.Background()
			if s.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}

			records, err := s.service.Summarize(ctx, loc)
			if err != nil {
				s.logger.Warn("scheduler: warm-up failed", zap.String("location", loc.Key()), zap.Error(err))
				return
			}
			s.logger.Debug("scheduler: warmed location", zap.String("location", loc.Key()), zap.Int("records", len(records)))
		}()
	}
	wg.Wait()
	s.logger.Info("scheduler: completed cache warm-up")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
