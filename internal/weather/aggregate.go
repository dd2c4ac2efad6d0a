package weather

import (
	"fmt"
	"sort"
)

// Aggregate tallies conditions per calendar day across all years.
// Records are ordered by month, then day. An empty input yields an empty, non-nil slice.
func Aggregate(observations []DailyObservation) ([]AggregationRecord, error) {
	counts := make(map[AggregationKey]map[Condition]int)

	for i, obs := range observations {
		if obs.Date.IsZero() {
			return nil, NewError(KindAggregation, fmt.Errorf("observation %d has no date", i))
		}

		key := AggregationKey{Month: int(obs.Date.Month()), Day: obs.Date.Day()}
		tally, ok := counts[key]
		if !ok {
			tally = make(map[Condition]int)
			counts[key] = tally
		}
		tally[ClassifyObservation(obs)]++
	}

	keys := make([]AggregationKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Month != keys[j].Month {
			return keys[i].Month < keys[j].Month
		}
		return keys[i].Day < keys[j].Day
	})

	records := make([]AggregationRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, AggregationRecord{
			Month:         k.Month,
			Day:           k.Day,
			WeatherCounts: counts[k],
		})
	}
	return records, nil
}
