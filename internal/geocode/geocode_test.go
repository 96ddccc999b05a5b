package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

func fakeLookup(known map[string]geocoder.Location) LookupFunc {
	return func(a geocoder.Address) (geocoder.Location, error) {
		loc, ok := known[a.City+"/"+a.Country]
		if !ok {
			return geocoder.Location{}, errors.New("ZERO_RESULTS")
		}
		return loc, nil
	}
}

func TestNewResolverRequiresKey(t *testing.T) {
	_, err := NewResolver("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestResolve(t *testing.T) {
	r := NewResolverWithLookup(fakeLookup(map[string]geocoder.Location{
		"Karlskrona/Sweden": {Latitude: 56.16, Longitude: 15.59},
	}))

	loc, err := r.Resolve(context.Background(), " Karlskrona ", "Sweden")
	require.NoError(t, err)
	assert.Equal(t, weather.Location{Name: "Karlskrona", Lat: 56.16, Lon: 15.59}, loc)

	_, err = r.Resolve(context.Background(), "Atlantis", "Sweden")
	assert.ErrorContains(t, err, "ZERO_RESULTS")

	_, err = r.Resolve(context.Background(), "  ", "Sweden")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestResolveHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	r := NewResolverWithLookup(func(geocoder.Address) (geocoder.Location, error) {
		<-release
		return geocoder.Location{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx, "Lund", "Sweden")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveAllSkipsFailures(t *testing.T) {
	r := NewResolverWithLookup(fakeLookup(map[string]geocoder.Location{
		"Lund/Sweden": {Latitude: 55.70, Longitude: 13.19},
		"Umeå/Sweden": {Latitude: 63.83, Longitude: 20.26},
	}))

	locs := r.ResolveAll(context.Background(),
		[]string{"Lund", "Atlantis", "Umeå"},
		[]string{"Sweden", "Sweden", "Sweden"})

	require.Len(t, locs, 2)
	assert.Equal(t, "Lund", locs[0].Name)
	assert.Equal(t, "Umeå", locs[1].Name)
}
