package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	httpapi "github.com/i474232898/smhi-forecast-digest/internal/api/http"
	"github.com/i474232898/smhi-forecast-digest/internal/config"
	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/geocode"
	"github.com/i474232898/smhi-forecast-digest/internal/report"
	"github.com/i474232898/smhi-forecast-digest/internal/scheduler"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
	"github.com/i474232898/smhi-forecast-digest/internal/weather/providers"
)

// defaultLocation is used by --once when nothing else is configured.
var defaultLocation = weather.Location{Name: "Karlskrona", Lat: 56.16, Lon: 15.59}

func main() {
	once := pflag.Bool("once", false, "print reports for the configured locations and exit")
	coverage := pflag.Bool("coverage", false, "with --once, print the feed coverage analysis instead of the report")
	lat := pflag.Float64("lat", defaultLocation.Lat, "latitude of a single location to report on")
	lon := pflag.Float64("lon", defaultLocation.Lon, "longitude of a single location to report on")
	name := pflag.String("name", "", "display name for --lat/--lon")
	pflag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Providers in failover order, each with retries and a circuit breaker.
	provs, err := buildProviders(cfg)
	if err != nil {
		log.Fatalf("failed to create providers: %v", err)
	}

	aggregator := forecast.NewAggregator(
		forecast.WithPolicy(cfg.Policy()),
		forecast.WithSkipHook(func(err error) {
			log.Printf("WARN: skipping forecast entry: %v", err)
		}),
	)
	log.Printf("INFO: aggregation policy %s", aggregator.Policy())

	service := weather.NewService(aggregator, provs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	locations := resolveLocations(ctx, cfg)

	if *once {
		pinned := pflag.CommandLine.Changed("lat") || pflag.CommandLine.Changed("lon")
		if pinned || len(locations) == 0 {
			loc := weather.Location{Name: *name, Lat: *lat, Lon: *lon}
			if !pinned && loc.Name == "" {
				loc.Name = defaultLocation.Name
			}
			locations = []weather.Location{loc}
		}
		if err := runOnce(ctx, service, locations, *coverage); err != nil {
			log.Printf("ERROR: %v", err)
			stop()
			os.Exit(1)
		}
		return
	}

	serve(ctx, cfg, service, locations)
}

func buildProviders(cfg *config.AppConfig) ([]weather.FeedProvider, error) {
	clientCfg := cfg.ClientConfig()

	smhi, err := providers.NewSMHIProvider(cfg.SMHIBaseURL, clientCfg)
	if err != nil {
		return nil, err
	}
	provs := []weather.FeedProvider{smhi}

	if cfg.OpenMeteoFallback {
		om, err := providers.NewOpenMeteoProvider(cfg.OpenMeteoBaseURL, clientCfg)
		if err != nil {
			return nil, err
		}
		provs = append(provs, om)
	}
	return provs, nil
}

// resolveLocations merges WEATHER_LOCATIONS with geocoded cities.
func resolveLocations(ctx context.Context, cfg *config.AppConfig) []weather.Location {
	locations := append([]weather.Location(nil), cfg.Locations...)
	if len(cfg.Cities) == 0 {
		return locations
	}

	resolver, err := geocode.NewResolver(cfg.GeocoderAPIKey)
	if err != nil {
		log.Printf("WARN: ignoring WEATHER_LOCATION_CITY: %v", err)
		return locations
	}

	cities := make([]string, len(cfg.Cities))
	countries := make([]string, len(cfg.Cities))
	for i, q := range cfg.Cities {
		cities[i], countries[i] = q.City, q.Country
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return append(locations, resolver.ResolveAll(ctx, cities, countries)...)
}

func runOnce(ctx context.Context, service *weather.Service, locations []weather.Location, coverage bool) error {
	if !coverage {
		sched := scheduler.New(locations, 0, service, os.Stdout)
		if failed := sched.RunOnce(ctx); failed > 0 {
			return fmt.Errorf("%d of %d locations failed", failed, len(locations))
		}
		return nil
	}

	for _, loc := range locations {
		cov, err := service.Coverage(ctx, loc)
		if err != nil {
			return err
		}
		if err := report.RenderCoverage(os.Stdout, cov); err != nil {
			return err
		}
	}
	return nil
}

func serve(ctx context.Context, cfg *config.AppConfig, service *weather.Service, locations []weather.Location) {
	// Scheduler that periodically prints reports.
	sched := scheduler.New(locations, cfg.WatchInterval, service, os.Stdout)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "smhi-forecast-digest",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          45 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "smhi-forecast-digest",
			"locations": len(locations),
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
