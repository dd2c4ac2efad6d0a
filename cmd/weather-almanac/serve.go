package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-almanac/internal/api/http"
	"github.com/i474232898/weather-almanac/internal/metrics"
	"github.com/i474232898/weather-almanac/internal/scheduler"
	"github.com/i474232898/weather-almanac/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	collector := metrics.NewCollector("weather_almanac", prometheus.DefaultRegisterer)

	a, err := bootstrap(collector)
	if err != nil {
		return err
	}
	defer a.close()
	cfg := a.cfg

	if rc, ok := a.cache.(*store.RedisCache); ok {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			a.logger.Warn("redis cache unreachable; requests will bypass it until it recovers", zap.Error(err))
		}
		cancel()
	}

	// Scheduler that keeps configured locations in the response cache.
	sched := scheduler.New(cfg.WarmupLocations, cfg.WarmupInterval, cfg.RequestTimeout, a.service, a.logger)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(httpapi.AppOptions{
		Service:           a.service,
		Logger:            a.logger,
		Metrics:           collector,
		Gatherer:          prometheus.DefaultGatherer,
		AllowOrigins:      cfg.CORSAllowOrigins,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		RequestTimeout:    cfg.RequestTimeout,
		StrictErrorStatus: cfg.StrictErrorStatus,
		AccessLog:         true,
	})

	go func() {
		a.logger.Info("server listening", zap.String("port", cfg.Port), zap.String("cache", cfg.CacheBackend))
		if err := app.Listen(":" + cfg.Port); err != nil {
			a.logger.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		a.logger.Error("error during shutdown", zap.Error(err))
	}
	return nil
}
