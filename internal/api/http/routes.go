package httpapi

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/report"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

var validate = validator.New()

// requestTimeout bounds the upstream fetch behind every forecast route.
const requestTimeout = 30 * time.Second

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		return c.JSON(rep)
	})

	v1.Get("/forecast/current", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		if rep.Current == nil {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data for requested location")
		}
		return c.JSON(fiber.Map{
			"location": rep.Location,
			"provider": rep.Provider,
			"current":  rep.Current,
		})
	})

	v1.Get("/forecast/slots", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"location":    rep.Location,
			"provider":    rep.Provider,
			"generatedAt": rep.GeneratedAt,
			"slots":       rep.Slots,
		})
	})

	v1.Get("/forecast/daily", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"location":    rep.Location,
			"provider":    rep.Provider,
			"generatedAt": rep.GeneratedAt,
			"days":        rep.Daily,
		})
	})

	v1.Get("/forecast/daily/chart", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := report.RenderDailyChart(&buf, rep.Daily); err != nil {
			if errors.Is(err, report.ErrNotEnoughData) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			log.Printf("ERROR: chart rendering failed for %s: %v", rep.Location, err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Type("png")
		return c.Send(buf.Bytes())
	})

	v1.Get("/forecast/text", func(c *fiber.Ctx) error {
		rep, err := buildReport(c, service)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := report.Render(&buf, rep); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
		}
		c.Type("txt", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1.Get("/forecast/coverage", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()

		cov, err := service.Coverage(ctx, loc.toLocation())
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(cov)
	})
}

func buildReport(c *fiber.Ctx, service *weather.Service) (weather.Report, error) {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return weather.Report{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
	defer cancel()

	rep, err := service.BuildReport(ctx, loc.toLocation())
	if err != nil {
		return weather.Report{}, upstreamError(err)
	}
	return rep, nil
}

// upstreamError maps service failures onto HTTP errors.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, forecast.ErrMalformedEntry):
		return fiber.NewError(fiber.StatusBadGateway, "forecast feed contains malformed entries")
	case errors.Is(err, weather.ErrNoProviders):
		return fiber.NewError(fiber.StatusServiceUnavailable, "no forecast providers configured")
	case errors.Is(err, weather.ErrAllProvidersFailed):
		return fiber.NewError(fiber.StatusBadGateway, "forecast providers unavailable")
	default:
		log.Printf("ERROR: forecast request failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build forecast")
	}
}

// locationQuery holds query parameters for identifying a forecast point.
type locationQuery struct {
	Name string   `validate:"max=64"`
	Lat  *float64 `validate:"required,latitude"`
	Lon  *float64 `validate:"required,longitude"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		Name: l.Name,
		Lat:  *l.Lat,
		Lon:  *l.Lon,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Name = c.Query("name")

	var err error
	if q.Lat, err = parseCoord(c.Query("lat")); err != nil {
		return q, errors.New("lat must be a number")
	}
	if q.Lon, err = parseCoord(c.Query("lon")); err != nil {
		return q, errors.New("lon must be a number")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// parseCoord returns nil for an empty value so that validation reports it as missing.
func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
