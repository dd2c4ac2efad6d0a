package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/metrics"
	"github.com/i474232898/weather-almanac/internal/store"
	"github.com/i474232898/weather-almanac/internal/weather"
)

// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
const DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// maxArchiveBody bounds a daily series response; 85 years of weather codes is well under 1 MiB.
const maxArchiveBody = 32 << 20

// DefaultBackoff retries five times starting at 200ms.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      5,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// OpenMeteoArchiveOptions configures NewOpenMeteoArchive. Zero values take defaults.
type OpenMeteoArchiveOptions struct {
	BaseURL string
	Backoff BackoffConfig
	Cache   store.Cache
	Logger  *zap.Logger
	Metrics *metrics.Collector
}

// OpenMeteoArchive implements weather.Provider against the Open-Meteo archive API.
type OpenMeteoArchive struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	cache   store.Cache
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewOpenMeteoArchive creates the archive provider. A nil client means http.DefaultClient.
func NewOpenMeteoArchive(client *http.Client, opts OpenMeteoArchiveOptions) *OpenMeteoArchive {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultArchiveURL
	}
	if opts.Backoff.InitialInterval <= 0 {
		opts.Backoff = DefaultBackoff
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &OpenMeteoArchive{
		name:    "openmeteo-archive",
		baseURL: opts.BaseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: opts.Backoff,
		},
		circuit: newCircuitBreaker("openmeteo-archive"),
		cache:   opts.Cache,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// FetchDaily returns the daily weather codes for q. Successful raw responses are cached by URL.
func (p *OpenMeteoArchive) FetchDaily(ctx context.Context, q weather.DailyQuery) ([]weather.DailyObservation, error) {
	u := p.requestURL(q)

	if body, ok := p.cached(ctx, u); ok {
		obs, err := decodeArchive(body)
		if err == nil {
			return obs, nil
		}
		p.logger.Warn("discarding undecodable cached response", zap.String("url", u), zap.Error(err))
	}

	body, err := p.download(ctx, u)
	if err != nil {
		return nil, weather.NewError(weather.KindProvider, fmt.Errorf("%s: %w", p.name, err))
	}

	obs, err := decodeArchive(body)
	if err != nil {
		return nil, weather.NewError(weather.KindProvider, fmt.Errorf("%s: %w", p.name, err))
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, u, body); err != nil {
			p.logger.Warn("response cache write failed", zap.String("url", u), zap.Error(err))
		}
	}
	return obs, nil
}

func (p *OpenMeteoArchive) requestURL(q weather.DailyQuery) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(q.Location.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(q.Location.Longitude, 'f', -1, 64))
	values.Set("start_date", q.Window.Start.Format(time.DateOnly))
	values.Set("end_date", q.Window.End.Format(time.DateOnly))
	values.Set("daily", "weather_code")
	values.Set("timezone", "GMT")

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

func (p *OpenMeteoArchive) cached(ctx context.Context, u string) ([]byte, bool) {
	if p.cache == nil {
		return nil, false
	}

	body, err := p.cache.Get(ctx, u)
	switch {
	case err == nil:
		p.metrics.RecordCacheLookup("hit")
		return body, true
	case errors.Is(err, store.ErrNotFound):
		p.metrics.RecordCacheLookup("miss")
	default:
		p.metrics.RecordCacheLookup("error")
		p.logger.Warn("response cache read failed", zap.String("url", u), zap.Error(err))
	}
	return nil, false
}

func (p *OpenMeteoArchive) download(ctx context.Context, u string) ([]byte, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	onRetry := func(attempt int, err error) {
		p.metrics.RecordRetry(p.name)
		p.logger.Info("retrying archive request",
			zap.Int("attempt", attempt),
			zap.String("url", u),
			zap.Error(err),
		)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest, onRetry)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

type archivePayload struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	Daily  *struct {
		Time        []string   `json:"time"`
		WeatherCode []*float64 `json:"weather_code"`
	} `json:"daily"`
}

// decodeArchive turns an archive response body into observations, one per listed day.
func decodeArchive(body []byte) ([]weather.DailyObservation, error) {
	var payload archivePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if payload.Error {
		return nil, fmt.Errorf("upstream error: %s", payload.Reason)
	}
	if payload.Daily == nil {
		return nil, errors.New("malformed response: no daily series")
	}

	days, codes := payload.Daily.Time, payload.Daily.WeatherCode
	if len(days) == 0 {
		return nil, errors.New("empty daily series")
	}
	if len(days) != len(codes) {
		return nil, fmt.Errorf("malformed response: %d dates but %d weather codes", len(days), len(codes))
	}

	obs := make([]weather.DailyObservation, 0, len(days))
	for i, d := range days {
		date, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return nil, fmt.Errorf("malformed date %q at index %d: %w", d, i, err)
		}
		obs = append(obs, weather.DailyObservation{
			Date:        date,
			WeatherCode: toCode(codes[i]),
		})
	}
	return obs, nil
}

// toCode converts a JSON number to a weather code; null, non-integral and out-of-range values yield nil.
func toCode(v *float64) *int {
	if v == nil || math.IsNaN(*v) || *v != math.Trunc(*v) || math.Abs(*v) > math.MaxInt32 {
		return nil
	}
	c := int(*v)
	return &c
}
