package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/metrics"
)

const serviceName = "weather-almanac"

// AppOptions configures NewApp.
type AppOptions struct {
	Service Summarizer
	Logger  *zap.Logger
	Metrics *metrics.Collector
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer

	AllowOrigins      string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	RequestTimeout    time.Duration
	StrictErrorStatus bool
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// NewApp builds the Fiber application with middleware and all routes registered.
func NewApp(opts AppOptions) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("path", c.Path()),
					zap.String("request_id", requestID(c)),
					zap.Error(err),
				)
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(newCORS(opts.AllowOrigins))
	app.Use(metricsMiddleware(opts.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	RegisterRoutes(app, opts.Service, RouteConfig{
		Logger:            log,
		RequestTimeout:    opts.RequestTimeout,
		StrictErrorStatus: opts.StrictErrorStatus,
	})

	return app
}

// newCORS allows every method and header. Credentials are only allowed with explicit origins.
func newCORS(origins string) fiber.Handler {
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,HEAD,OPTIONS",
		AllowCredentials: origins != "*",
	})
}

func metricsMiddleware(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			}
		}
		collector.RecordAPIRequest(c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
