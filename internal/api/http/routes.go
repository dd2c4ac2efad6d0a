package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/weather-almanac/internal/weather"
)

var validate = newValidator()

// newValidator registers the "coordinate" tag, which accepts anything strconv.ParseFloat does.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("coordinate", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil
	})
	return v
}

// Summarizer runs the weather pipeline for one location.
type Summarizer interface {
	Summarize(ctx context.Context, loc weather.Location) ([]weather.AggregationRecord, error)
}

// RouteConfig holds the request policy of the weather routes.
type RouteConfig struct {
	Logger *zap.Logger
	// RequestTimeout bounds a whole pipeline run; zero means no deadline.
	RequestTimeout time.Duration
	// StrictErrorStatus sends pipeline failures with 502/500 instead of 200.
	StrictErrorStatus bool
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Summarizer, cfg RouteConfig) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	app.Get("/weather/", func(c *fiber.Ctx) error {
		loc, err := parseSummaryQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if service == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "weather service not configured")
		}

		ctx := c.UserContext()
		if cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}

		records, err := summarize(ctx, service, loc)
		if err != nil {
			kind := weather.KindOf(err)
			cfg.Logger.Error("weather summary failed",
				zap.String("location", loc.Key()),
				zap.String("kind", string(kind)),
				zap.String("request_id", requestID(c)),
				zap.Error(err),
			)

			status := fiber.StatusOK
			if cfg.StrictErrorStatus {
				status = statusForKind(kind)
			}
			return c.Status(status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(records)
	})
}

// summarize runs the pipeline, turning a panic into an error so it follows the same status policy.
func summarize(ctx context.Context, service Summarizer, loc weather.Location) (records []weather.AggregationRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return service.Summarize(ctx, loc)
}

func statusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindProvider:
		return fiber.StatusBadGateway
	case weather.KindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// summaryQuery holds the coordinates of a weather summary request.
type summaryQuery struct {
	Latitude  string `validate:"required,coordinate"`
	Longitude string `validate:"required,coordinate"`
}

func parseSummaryQuery(c *fiber.Ctx) (weather.Location, error) {
	q := summaryQuery{
		Latitude:  strings.TrimSpace(c.Query("latitude")),
		Longitude: strings.TrimSpace(c.Query("longitude")),
	}
	if err := validate.Struct(q); err != nil {
		return weather.Location{}, describeValidation(err)
	}

	lat, err := strconv.ParseFloat(q.Latitude, 64)
	if err != nil {
		return weather.Location{}, weather.NewError(weather.KindValidation, errors.New("latitude must be a number"))
	}
	lon, err := strconv.ParseFloat(q.Longitude, 64)
	if err != nil {
		return weather.Location{}, weather.NewError(weather.KindValidation, errors.New("longitude must be a number"))
	}
	return weather.Location{Latitude: lat, Longitude: lon}, nil
}

// describeValidation turns validator errors into a short message naming each bad parameter.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", name))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be a number", name))
		}
	}
	return weather.NewError(weather.KindValidation, errors.New(strings.Join(msgs, "; ")))
}
