package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/i474232898/weather-almanac/internal/common"
	"github.com/i474232898/weather-almanac/internal/weather"
)

type AppConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	RequestTimeout    time.Duration
	StrictErrorStatus bool

	CORSAllowOrigins string

	// Upstream archive provider.
	ProviderBaseURL string
	Window          weather.DateWindow
	HTTPTimeout     time.Duration
	MaxRetries      int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration

	// Response cache.
	CacheBackend   string
	RedisAddr      string
	CacheKeyPrefix string

	// Cache warm-up.
	WarmupLocations []weather.Location
	WarmupInterval  time.Duration

	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "90s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.strict_error_status", false)
	v.SetDefault("cors.allow_origins", "*")

	v.SetDefault("provider.base_url", "https://archive-api.open-meteo.com/v1/archive")
	v.SetDefault("provider.start_date", "1940-01-01")
	v.SetDefault("provider.end_date", "2024-12-31")
	v.SetDefault("provider.http_timeout", "30s")
	v.SetDefault("provider.max_retries", 5)
	v.SetDefault("provider.backoff_initial", "200ms")
	v.SetDefault("provider.backoff_max", "5s")

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.key_prefix", "weather-almanac:")

	v.SetDefault("warmup.locations", "")
	v.SetDefault("warmup.interval", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from .env, an optional config.yaml and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the conventional override on container platforms.
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:              v.GetString("server.port"),
		StrictErrorStatus: v.GetBool("server.strict_error_status"),
		CORSAllowOrigins:  v.GetString("cors.allow_origins"),
		ProviderBaseURL:   v.GetString("provider.base_url"),
		MaxRetries:        v.GetInt("provider.max_retries"),
		CacheBackend:      strings.ToLower(v.GetString("cache.backend")),
		RedisAddr:         v.GetString("cache.redis_addr"),
		CacheKeyPrefix:    v.GetString("cache.key_prefix"),
		LogLevel:          v.GetString("log.level"),
		LogFormat:         v.GetString("log.format"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"server.read_timeout", &cfg.ReadTimeout},
		{"server.write_timeout", &cfg.WriteTimeout},
		{"server.request_timeout", &cfg.RequestTimeout},
		{"provider.http_timeout", &cfg.HTTPTimeout},
		{"provider.backoff_initial", &cfg.BackoffInitial},
		{"provider.backoff_max", &cfg.BackoffMax},
		{"warmup.interval", &cfg.WarmupInterval},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid provider.max_retries: %d", cfg.MaxRetries)
	}
	if cfg.BackoffInitial <= 0 {
		return nil, fmt.Errorf("invalid provider.backoff_initial: must be positive")
	}

	window, err := weather.ParseWindow(v.GetString("provider.start_date"), v.GetString("provider.end_date"))
	if err != nil {
		return nil, fmt.Errorf("invalid provider window: %w", err)
	}
	cfg.Window = window

	coords, err := common.ParseCoordinates(v.GetString("warmup.locations"))
	if err != nil {
		return nil, fmt.Errorf("invalid warmup.locations: %w", err)
	}
	for _, c := range coords {
		cfg.WarmupLocations = append(cfg.WarmupLocations, weather.Location{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
	}

	return cfg, nil
}
