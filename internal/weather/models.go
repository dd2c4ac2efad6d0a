package weather

import (
	"fmt"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionSunny   Condition = "sunny"
	ConditionCloudy  Condition = "cloudy"
	ConditionRainy   Condition = "rainy"
	ConditionSnowy   Condition = "snowy"
	ConditionUnknown Condition = "unknown"
)

// Conditions lists every condition Classify can return.
var Conditions = []Condition{
	ConditionSunny,
	ConditionCloudy,
	ConditionRainy,
	ConditionSnowy,
	ConditionUnknown,
}

// Location is a coordinate pair queried against the provider.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns a canonical string key for logging and metrics labels.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// DailyObservation is one day of the provider's series.
// WeatherCode is nil when the provider reported no value for that day.
type DailyObservation struct {
	Date        time.Time `json:"date"`
	WeatherCode *int      `json:"weather_code"`
}

// AggregationKey identifies a calendar day independent of the year.
type AggregationKey struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

// AggregationRecord holds the condition tallies of one calendar day across all years.
// Conditions that never occurred are absent from WeatherCounts.
type AggregationRecord struct {
	Month         int               `json:"month"`
	Day           int               `json:"day"`
	WeatherCounts map[Condition]int `json:"weather_counts"`
}

// Total returns the number of observations tallied into the record.
func (r AggregationRecord) Total() int {
	n := 0
	for _, c := range r.WeatherCounts {
		n += c
	}
	return n
}

// DateWindow is the date range requested from the provider. Both ends are inclusive days.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// DailyQuery is what the service asks a Provider for.
type DailyQuery struct {
	Location Location
	Window   DateWindow
}
