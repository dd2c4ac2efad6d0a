package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/config"
	"github.com/i474232898/weather-almanac/internal/logging"
	"github.com/i474232898/weather-almanac/internal/metrics"
	"github.com/i474232898/weather-almanac/internal/store"
	"github.com/i474232898/weather-almanac/internal/weather"
	"github.com/i474232898/weather-almanac/internal/weather/providers"
)

// app bundles the components shared by every command.
type app struct {
	cfg     *config.AppConfig
	logger  *zap.Logger
	cache   store.Cache
	service *weather.Service
}

func bootstrap(collector *metrics.Collector) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	cache, err := store.New(store.Options{
		Backend:   cfg.CacheBackend,
		RedisAddr: cfg.RedisAddr,
		KeyPrefix: cfg.CacheKeyPrefix,
	})
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenMeteoArchive(httpClient, providers.OpenMeteoArchiveOptions{
		BaseURL: cfg.ProviderBaseURL,
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.BackoffInitial,
			MaxInterval:     cfg.BackoffMax,
		},
		Cache:   cache,
		Logger:  logger,
		Metrics: collector,
	})

	return &app{
		cfg:     cfg,
		logger:  logger,
		cache:   cache,
		service: weather.NewService(provider, cfg.Window, logger, collector),
	}, nil
}

// close releases the cache connection, if any, and flushes the logger.
func (a *app) close() {
	if c, ok := a.cache.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("closing cache", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
