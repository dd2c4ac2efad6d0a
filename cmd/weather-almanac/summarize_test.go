package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-almanac/internal/weather"
)

func TestWriteRecords(t *testing.T) {
	records := []weather.AggregationRecord{
		{Month: 3, Day: 5, WeatherCounts: map[weather.Condition]int{weather.ConditionSunny: 2, weather.ConditionCloudy: 1}},
	}

	var text bytes.Buffer
	require.NoError(t, writeRecords(&text, records, "text"))
	assert.Equal(t, "03-05  cloudy=1 sunny=2\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeRecords(&js, records, "json"))
	assert.JSONEq(t, `[{"month":3,"day":5,"weather_counts":{"sunny":2,"cloudy":1}}]`, js.String())
}

func TestSummarizeRejectsUnknownOutput(t *testing.T) {
	cmd := newSummarizeCmd()
	cmd.SetArgs([]string{"--latitude", "1", "--longitude", "2", "--output", "xml"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
