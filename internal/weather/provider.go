package weather

import (
	"context"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
)

// FeedProvider abstracts a source of hourly point forecasts (e.g. SMHI, Open-Meteo).
// Implementations deliver the feed in SMHI parameter codes.
type FeedProvider interface {
	Name() string
	FetchFeed(ctx context.Context, loc Location) (forecast.Feed, error)
}
