package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func code(c int) *int { return &c }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateExample(t *testing.T) {
	obs := []DailyObservation{
		{Date: day(2021, time.March, 15), WeatherCode: code(0)},
		{Date: day(1999, time.March, 15), WeatherCode: code(61)},
		{Date: day(2000, time.March, 16), WeatherCode: code(95)},
	}

	got, err := Aggregate(obs)
	require.NoError(t, err)

	want := []AggregationRecord{
		{Month: 3, Day: 15, WeatherCounts: map[Condition]int{ConditionSunny: 1, ConditionRainy: 1}},
		{Month: 3, Day: 16, WeatherCounts: map[Condition]int{ConditionRainy: 1}},
	}
	assert.Equal(t, want, got)
}

func TestAggregateUnknownCode(t *testing.T) {
	got, err := Aggregate([]DailyObservation{{Date: day(1950, time.July, 4), WeatherCode: code(17)}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[Condition]int{ConditionUnknown: 1}, got[0].WeatherCounts)
}

func TestAggregateMissingCodeIsKept(t *testing.T) {
	got, err := Aggregate([]DailyObservation{
		{Date: day(1950, time.July, 4)},
		{Date: day(1951, time.July, 4), WeatherCode: code(2)},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[Condition]int{ConditionUnknown: 1, ConditionSunny: 1}, got[0].WeatherCounts)
}

func TestAggregateEmpty(t *testing.T) {
	got, err := Aggregate(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateMissingDate(t *testing.T) {
	_, err := Aggregate([]DailyObservation{{WeatherCode: code(0)}})
	require.Error(t, err)
	assert.Equal(t, KindAggregation, KindOf(err))
}

func TestAggregateOrderingAndConservation(t *testing.T) {
	var obs []DailyObservation
	start := day(1996, time.January, 1)
	codes := []int{0, 3, 61, 71, 17, 45, 99}
	for i := 0; i < 3*366; i++ {
		obs = append(obs, DailyObservation{
			Date:        start.AddDate(0, 0, i),
			WeatherCode: code(codes[i%len(codes)]),
		})
	}
	// reversed input must produce the same output
	reversed := make([]DailyObservation, len(obs))
	for i := range obs {
		reversed[len(obs)-1-i] = obs[i]
	}

	got, err := Aggregate(obs)
	require.NoError(t, err)
	again, err := Aggregate(obs)
	require.NoError(t, err)
	fromReversed, err := Aggregate(reversed)
	require.NoError(t, err)

	assert.Equal(t, got, again)
	assert.Equal(t, got, fromReversed)

	expected := make(map[AggregationKey]int)
	for _, o := range obs {
		expected[AggregationKey{Month: int(o.Date.Month()), Day: o.Date.Day()}]++
	}
	require.Len(t, got, len(expected))
	assert.Len(t, got, 366, "leap day from 1996 must be present")

	for i, r := range got {
		assert.Equal(t, expected[AggregationKey{Month: r.Month, Day: r.Day}], r.Total(), "%d/%d", r.Month, r.Day)
		for _, n := range r.WeatherCounts {
			assert.Positive(t, n)
		}
		if i > 0 {
			prev := got[i-1]
			assert.True(t, prev.Month < r.Month || (prev.Month == r.Month && prev.Day < r.Day))
		}
	}

	feb29 := got[59]
	assert.Equal(t, 2, feb29.Month)
	assert.Equal(t, 29, feb29.Day)
	assert.Equal(t, 1, feb29.Total())
}
