package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/metrics"
	"github.com/i474232898/conditions/internal/weather"
)

var validate = validator.New()

// SettingsFunc returns the settings to apply to one request.
type SettingsFunc func() weather.Settings

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, settings SettingsFunc) {
	v1 := app.Group("/api/v1")

	v1.Get("/conditions/current", func(c *fiber.Ctx) error {
		var q conditionsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		s := settings()
		if q.Unit != "" {
			s.Unit = weather.ParseUnit(q.Unit)
		}

		out, err := service.Current(c.UserContext(), q.Region, s)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(out)
	})

	v1.Get("/location", func(c *fiber.Ctx) error {
		var q conditionsQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := service.Resolve(c.UserContext(), q.Region, settings().StoredLocation)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(loc)
	})
}

// conditionsQuery holds the optional query parameters shared by the endpoints.
type conditionsQuery struct {
	Region string
	Unit   string `validate:"omitempty,oneof=c f C F celsius fahrenheit"`
}

func (q *conditionsQuery) bind(c *fiber.Ctx) error {
	q.Region = c.Query("region")
	q.Unit = c.Query("unit")
	return validate.Struct(q)
}

// toHTTPError maps the resolver and fetch error classes to status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidRegionFormat):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrUnknownLocation):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrLocationUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, weather.ErrNoProviderSucceeded):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		logger.Errorf("http: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

// countRequests records every response in metrics.Requests.
func countRequests(c *fiber.Ctx) error {
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	route := c.Path()
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		route = r.Path
	}
	metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	return err
}
