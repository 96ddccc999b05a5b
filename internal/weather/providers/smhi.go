package providers

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

// DefaultSMHIBaseURL is the PMP3G v2 point forecast API.
const DefaultSMHIBaseURL = "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2"

// SMHIProvider implements weather.FeedProvider for the SMHI open data API.
type SMHIProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// NewSMHIProvider creates a provider against baseURL (DefaultSMHIBaseURL when empty).
func NewSMHIProvider(baseURL string, cfg ClientConfig) (*SMHIProvider, error) {
	client, err := newRestyClient(cfg)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultSMHIBaseURL
	}

	return &SMHIProvider{
		name:    "smhi",
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newBreaker("smhi"),
	}, nil
}

func (p *SMHIProvider) Name() string {
	return p.name
}

// FetchFeed downloads the hourly point forecast for loc. The feed is returned
// as delivered; entry timestamps are validated later by the aggregator.
func (p *SMHIProvider) FetchFeed(ctx context.Context, loc weather.Location) (forecast.Feed, error) {
	u := fmt.Sprintf("%s/geotype/point/lon/%s/lat/%s/data.json", p.baseURL, coord(loc.Lon), coord(loc.Lat))

	var feed forecast.Feed
	if err := getJSON(ctx, p.client, p.circuit, u, nil, &feed); err != nil {
		return forecast.Feed{}, fmt.Errorf("smhi: %w", err)
	}
	return feed, nil
}

// coord formats a coordinate with at most four decimals; SMHI rejects longer ones.
func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
