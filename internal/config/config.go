package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
	"github.com/i474232898/smhi-forecast-digest/internal/weather/providers"
)

type AppConfig struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	SMHIBaseURL       string `envconfig:"SMHI_BASE_URL" default:"https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2" validate:"required,url"`
	OpenMeteoBaseURL  string `envconfig:"OPENMETEO_BASE_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	OpenMeteoFallback bool   `envconfig:"OPENMETEO_FALLBACK" default:"true"`

	// Outbound HTTP and retry settings shared by all providers.
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	HTTPMaxRetries   int           `envconfig:"HTTP_MAX_RETRIES" default:"3" validate:"gte=0,lte=10"`
	HTTPRetryWait    time.Duration `envconfig:"HTTP_RETRY_WAIT" default:"500ms" validate:"gt=0"`
	HTTPRetryMaxWait time.Duration `envconfig:"HTTP_RETRY_MAX_WAIT" default:"5s" validate:"gtefield=HTTPRetryWait"`

	// WatchInterval controls how often the scheduler prints reports.
	WatchInterval time.Duration `envconfig:"WATCH_INTERVAL" default:"30m" validate:"gt=0"`

	SkipMalformedEntries bool `envconfig:"SKIP_MALFORMED_ENTRIES" default:"false"`

	// Locations to watch, as name:lat:lon separated by commas.
	LocationList string `envconfig:"WEATHER_LOCATIONS"`

	// Cities to geocode into further locations when GeocoderAPIKey is set.
	City           string `envconfig:"WEATHER_LOCATION_CITY"`
	Country        string `envconfig:"WEATHER_LOCATION_COUNTRY"`
	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY"`

	Locations []weather.Location `ignored:"true"`
	Cities    []CityQuery        `ignored:"true"`
}

// CityQuery is a city/country pair waiting to be geocoded.
type CityQuery struct {
	City    string
	Country string
}

var validate = validator.New()

// Load reads configuration from the environment (and .env, when present).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	locs, err := parseLocations(cfg.LocationList)
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	cities, err := parseCities(cfg.City, cfg.Country)
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	return cfg, nil
}

// Policy returns the aggregation policy selected by SKIP_MALFORMED_ENTRIES.
func (c *AppConfig) Policy() forecast.Policy {
	if c.SkipMalformedEntries {
		return forecast.SkipMalformed
	}
	return forecast.FailFast
}

// ClientConfig returns the provider HTTP settings.
func (c *AppConfig) ClientConfig() providers.ClientConfig {
	cc := providers.DefaultClientConfig()
	cc.Timeout = c.HTTPTimeout
	cc.Backoff = providers.BackoffConfig{
		MaxRetries:      c.HTTPMaxRetries,
		InitialInterval: c.HTTPRetryWait,
		MaxInterval:     c.HTTPRetryMaxWait,
	}
	return cc
}

func parseLocations(list string) ([]weather.Location, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var locs []weather.Location
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid WEATHER_LOCATIONS entry %q: want name:lat:lon", item)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || validate.Var(lat, "latitude") != nil {
			return nil, fmt.Errorf("invalid latitude in WEATHER_LOCATIONS entry %q", item)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || validate.Var(lon, "longitude") != nil {
			return nil, fmt.Errorf("invalid longitude in WEATHER_LOCATIONS entry %q", item)
		}
		locs = append(locs, weather.Location{
			Name: strings.TrimSpace(parts[0]),
			Lat:  lat,
			Lon:  lon,
		})
	}
	return locs, nil
}

func parseCities(city, country string) ([]CityQuery, error) {
	if strings.TrimSpace(city) == "" && strings.TrimSpace(country) == "" {
		return nil, nil
	}
	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}

	queries := make([]CityQuery, 0, len(cities))
	for i := range cities {
		queries = append(queries, CityQuery{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}
	return queries, nil
}
