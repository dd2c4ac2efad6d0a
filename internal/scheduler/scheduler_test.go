package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-almanac/internal/weather"
)

type countingSummarizer struct {
	mu   sync.Mutex
	seen map[weather.Location]int
	err  error
}

func (c *countingSummarizer) Summarize(_ context.Context, loc weather.Location) ([]weather.AggregationRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = make(map[weather.Location]int)
	}
	c.seen[loc]++
	return nil, c.err
}

func (c *countingSummarizer) count(loc weather.Location) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen[loc]
}

func TestSchedulerWarmsEveryLocation(t *testing.T) {
	locs := []weather.Location{{Latitude: 40.4, Longitude: -3.7}, {Latitude: 52.5, Longitude: 13.4}}
	svc := &countingSummarizer{err: errors.New("upstream down")}

	s := New(locs, time.Hour, time.Second, svc, nil)
	assert.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return svc.count(locs[0]) == 1 && svc.count(locs[1]) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerWithoutLocations(t *testing.T) {
	svc := &countingSummarizer{}
	s := New(nil, time.Hour, time.Second, svc, nil)
	assert.NoError(t, s.Start())
	s.Stop()
	assert.Empty(t, svc.seen)
}
