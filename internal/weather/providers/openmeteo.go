package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

// DefaultOpenMeteoBaseURL is the Open-Meteo forecast endpoint.
const DefaultOpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// openMeteoVariables maps hourly Open-Meteo variables onto SMHI parameter codes.
// Open-Meteo has no thunder probability; precipitation probability stands in for tstm.
var openMeteoVariables = []struct {
	hourly string
	code   string
}{
	{"temperature_2m", "t"},
	{"relative_humidity_2m", "r"},
	{"wind_speed_10m", "ws"},
	{"wind_direction_10m", "wd"},
	{"pressure_msl", "msl"},
	{"precipitation_probability", "tstm"},
	{"weather_code", "Wsymb2"},
}

// OpenMeteoProvider implements weather.FeedProvider for Open-Meteo and
// reshapes its columnar hourly arrays into SMHI-style entries.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a provider against baseURL (DefaultOpenMeteoBaseURL when empty).
func NewOpenMeteoProvider(baseURL string, cfg ClientConfig) (*OpenMeteoProvider, error) {
	client, err := newRestyClient(cfg)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultOpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openmeteo"),
	}, nil
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPayload struct {
	Latitude    float64                    `json:"latitude"`
	Longitude   float64                    `json:"longitude"`
	HourlyUnits map[string]string          `json:"hourly_units"`
	Hourly      map[string]json.RawMessage `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchFeed(ctx context.Context, loc weather.Location) (forecast.Feed, error) {
	vars := make([]string, 0, len(openMeteoVariables))
	for _, v := range openMeteoVariables {
		vars = append(vars, v.hourly)
	}

	query := map[string]string{
		"latitude":        coord(loc.Lat),
		"longitude":       coord(loc.Lon),
		"hourly":          strings.Join(vars, ","),
		"wind_speed_unit": "ms",
		"timezone":        "GMT",
		"forecast_days":   "10",
	}

	var payload openMeteoPayload
	if err := getJSON(ctx, p.client, p.circuit, p.baseURL, query, &payload); err != nil {
		return forecast.Feed{}, fmt.Errorf("openmeteo: %w", err)
	}

	feed, err := payload.toFeed()
	if err != nil {
		return forecast.Feed{}, fmt.Errorf("openmeteo: %w", err)
	}
	return feed, nil
}

// toFeed transposes the hourly columns into one entry per timestamp. Null
// values are left out of the entry, as SMHI does for unreported parameters.
func (p openMeteoPayload) toFeed() (forecast.Feed, error) {
	var times []string
	if raw, ok := p.Hourly["time"]; ok {
		if err := json.Unmarshal(raw, &times); err != nil {
			return forecast.Feed{}, fmt.Errorf("%w: hourly.time: %v", errDecode, err)
		}
	}

	columns := make([][]*float64, len(openMeteoVariables))
	for i, v := range openMeteoVariables {
		raw, ok := p.Hourly[v.hourly]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &columns[i]); err != nil {
			return forecast.Feed{}, fmt.Errorf("%w: hourly.%s: %v", errDecode, v.hourly, err)
		}
	}

	feed := forecast.Feed{
		Geometry: forecast.Geometry{
			Type:        "Point",
			Coordinates: [][]float64{{p.Longitude, p.Latitude}},
		},
		TimeSeries: make([]forecast.Entry, 0, len(times)),
	}

	for row, ts := range times {
		entry := forecast.Entry{ValidTime: openMeteoTime(ts)}
		for i, v := range openMeteoVariables {
			if row >= len(columns[i]) || columns[i][row] == nil {
				continue
			}
			value := *columns[i][row]
			if v.code == forecast.CodeCondition {
				code, ok := wmoToWsymb2[int(value)]
				if !ok {
					continue
				}
				value = float64(code)
			}
			entry.Parameters = append(entry.Parameters, forecast.Parameter{
				Name:   v.code,
				Unit:   p.HourlyUnits[v.hourly],
				Values: []float64{value},
			})
		}
		feed.TimeSeries = append(feed.TimeSeries, entry)
	}

	return feed, nil
}

// openMeteoTime turns the zone-less GMT timestamps into RFC3339. Unparsable
// values are passed through so the aggregator reports them as malformed.
func openMeteoTime(s string) string {
	ts, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		return s
	}
	return ts.Format(time.RFC3339)
}

// wmoToWsymb2 maps WMO weather interpretation codes to the closest Wsymb2 symbol.
var wmoToWsymb2 = map[int]int{
	0:  1,  // clear sky
	1:  2,  // mainly clear
	2:  3,  // partly cloudy
	3:  6,  // overcast
	45: 7,  // fog
	48: 7,  // depositing rime fog
	51: 18, // light drizzle
	53: 18,
	55: 19,
	56: 22, // freezing drizzle
	57: 23,
	61: 18, // rain
	63: 19,
	65: 20,
	66: 22, // freezing rain
	67: 24,
	71: 25, // snowfall
	73: 26,
	75: 27,
	77: 25, // snow grains
	80: 8,  // rain showers
	81: 9,
	82: 10,
	85: 15, // snow showers
	86: 17,
	95: 11, // thunderstorm
	96: 11,
	99: 11,
}
