package weather

import (
	"context"
)

// Provider abstracts a historical daily weather source (e.g. the Open-Meteo archive).
// FetchDaily returns one observation per day of q.Window, in date order.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, q DailyQuery) ([]DailyObservation, error)
}
