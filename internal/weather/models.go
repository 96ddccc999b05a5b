package weather

import (
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
)

// Location is a forecast point. Name is for display only.
type Location struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return strconv.FormatFloat(l.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(l.Lon, 'f', 4, 64)
}

// String prefers the name and falls back to coordinates.
func (l Location) String() string {
	if l.Name != "" {
		return fmt.Sprintf("%s (%s)", l.Name, l.Key())
	}
	return l.Key()
}

// Report bundles the three summarized views computed from one feed.
type Report struct {
	ID           string                      `json:"id"`
	Location     Location                    `json:"location"`
	Provider     string                      `json:"provider"`
	GeneratedAt  time.Time                   `json:"generatedAt"` // reference clock used for slots and digest
	ApprovedTime time.Time                   `json:"approvedTime"`
	Current      *forecast.Sample            `json:"current"`
	Slots        forecast.SlotForecasts      `json:"slots"`
	Daily        []forecast.DailyDigestEntry `json:"daily"`
}

// CoverageReport is the feed analysis for one location.
type CoverageReport struct {
	Location      Location          `json:"location"`
	Provider      string            `json:"provider"`
	ApprovedTime  time.Time         `json:"approvedTime"`
	ReferenceTime time.Time         `json:"referenceTime"`
	Coverage      forecast.Coverage `json:"coverage"`
}
