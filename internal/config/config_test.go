package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2", cfg.SMHIBaseURL)
	assert.True(t, cfg.OpenMeteoFallback)
	assert.Equal(t, 30*time.Minute, cfg.WatchInterval)
	assert.Equal(t, forecast.FailFast, cfg.Policy())
	assert.Empty(t, cfg.Locations)
	assert.Empty(t, cfg.Cities)

	cc := cfg.ClientConfig()
	assert.Equal(t, 30*time.Second, cc.Timeout)
	assert.Equal(t, 3, cc.Backoff.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cc.Backoff.InitialInterval)
	assert.Equal(t, 5*time.Second, cc.Backoff.MaxInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_MAX_RETRIES", "0")
	t.Setenv("WATCH_INTERVAL", "5m")
	t.Setenv("SKIP_MALFORMED_ENTRIES", "true")
	t.Setenv("WEATHER_LOCATIONS", "Karlskrona:56.16:15.59, Kiruna:67.85:20.23")
	t.Setenv("WEATHER_LOCATION_CITY", "Lund,Umeå")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "Sweden,Sweden")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0, cfg.ClientConfig().Backoff.MaxRetries)
	assert.Equal(t, 5*time.Minute, cfg.WatchInterval)
	assert.Equal(t, forecast.SkipMalformed, cfg.Policy())
	assert.Equal(t, []weather.Location{
		{Name: "Karlskrona", Lat: 56.16, Lon: 15.59},
		{Name: "Kiruna", Lat: 67.85, Lon: 20.23},
	}, cfg.Locations)
	assert.Equal(t, []CityQuery{{"Lund", "Sweden"}, {"Umeå", "Sweden"}}, cfg.Cities)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "PORT", "http"},
		{"bad base url", "SMHI_BASE_URL", "not a url"},
		{"zero interval", "WATCH_INTERVAL", "0s"},
		{"unparsable duration", "HTTP_TIMEOUT", "soon"},
		{"max wait below wait", "HTTP_RETRY_MAX_WAIT", "100ms"},
		{"location without coordinates", "WEATHER_LOCATIONS", "Visby"},
		{"latitude out of range", "WEATHER_LOCATIONS", "North:91:0"},
		{"longitude not a number", "WEATHER_LOCATIONS", "East:10:x"},
		{"cities without countries", "WEATHER_LOCATION_CITY", "Lund,Malmö"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
