// Package geocode turns city and country names into forecast locations.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

var (
	ErrMissingAPIKey = errors.New("geocoder API key not configured")
	ErrEmptyQuery    = errors.New("city must not be empty")
)

// LookupFunc resolves an address to coordinates.
type LookupFunc func(geocoder.Address) (geocoder.Location, error)

// Resolver geocodes addresses through the Google Geocoding API.
type Resolver struct {
	lookup LookupFunc
}

// NewResolver configures the geocoder with apiKey.
func NewResolver(apiKey string) (*Resolver, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	geocoder.ApiKey = apiKey
	return &Resolver{lookup: geocoder.Geocoding}, nil
}

// NewResolverWithLookup uses lookup instead of the Google API.
func NewResolverWithLookup(lookup LookupFunc) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve returns a location named after city. The lookup itself cannot be
// cancelled; ctx only stops the wait for it.
func (r *Resolver) Resolve(ctx context.Context, city, country string) (weather.Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Location{}, ErrEmptyQuery
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := r.lookup(geocoder.Address{City: city, Country: strings.TrimSpace(country)})
		done <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return weather.Location{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return weather.Location{}, fmt.Errorf("geocode %s, %s: %w", city, country, res.err)
		}
		return weather.Location{
			Name: city,
			Lat:  res.loc.Latitude,
			Lon:  res.loc.Longitude,
		}, nil
	}
}

// ResolveAll geocodes every city/country pair in order. Failures are logged and
// skipped.
func (r *Resolver) ResolveAll(ctx context.Context, cities, countries []string) []weather.Location {
	var locs []weather.Location
	for i, city := range cities {
		var country string
		if i < len(countries) {
			country = countries[i]
		}
		loc, err := r.Resolve(ctx, city, country)
		if err != nil {
			log.Printf("WARN: skipping location %q: %v", city, err)
			continue
		}
		log.Printf("INFO: resolved %s to %s", city, loc.Key())
		locs = append(locs, loc)
	}
	return locs
}
