// Package report renders forecast reports for humans: plain text for the
// terminal and the API, and a PNG chart of the daily temperature range.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/symbols"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

const (
	timeLayout = "2006-01-02 15:04 UTC"
	notAvail   = "N/A"
)

// Render writes the current observation, the slot forecast and the daily digest.
func Render(w io.Writer, r weather.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Forecast for %s (provider %s, report %s)\n", r.Location, r.Provider, r.ID)
	if !r.ApprovedTime.IsZero() {
		fmt.Fprintf(&b, "Approved %s\n", r.ApprovedTime.UTC().Format(timeLayout))
	}

	b.WriteString("\nCURRENT WEATHER:\n")
	if cur := r.Current; cur != nil {
		p := cur.Parameters
		fmt.Fprintf(&b, "  Time:           %s\n", cur.Time.Format(timeLayout))
		fmt.Fprintf(&b, "  Temperature:    %s°C\n", value(p, "t"))
		fmt.Fprintf(&b, "  Humidity:       %s%%\n", value(p, "r"))
		fmt.Fprintf(&b, "  Wind:           %s m/s %s\n", value(p, "ws"), direction(p))
		fmt.Fprintf(&b, "  Pressure:       %s hPa\n", value(p, "msl"))
		fmt.Fprintf(&b, "  Weather:        %s\n", symbols.Condition(int(p[forecast.CodeCondition])))
	} else {
		b.WriteString("  No data\n")
	}

	b.WriteString("\n3-HOUR FORECAST:\n")
	for _, sh := range forecast.SlotHours {
		slot := r.Slots.Slot(sh.Label)
		if slot == nil {
			fmt.Fprintf(&b, "  %-8s: No data\n", sh.Label)
			continue
		}
		p := slot.Parameters
		fmt.Fprintf(&b, "  %-8s (%02d:00): %s°C, Wind %s m/s, Rain %s%%\n",
			sh.Label, slot.Hour, value(p, "t"), value(p, "ws"), value(p, "tstm"))
	}

	fmt.Fprintf(&b, "\n%d-DAY FORECAST:\n", forecast.DigestDays)
	if len(r.Daily) == 0 {
		b.WriteString("  No data\n")
	}
	for i, d := range r.Daily {
		fmt.Fprintf(&b, "  Day %d (%-9s): %-12s Rain %2.0f%% - %s\n",
			i+1, d.Weekday, tempRange(d), d.StormMax, d.Description)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func value(p map[string]float64, code string) string {
	v, ok := p[code]
	if !ok {
		return notAvail
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func direction(p map[string]float64) string {
	deg, ok := p["wd"]
	if !ok || math.IsNaN(deg) {
		return notAvail
	}
	return symbols.Compass(deg)
}

func tempRange(d forecast.DailyDigestEntry) string {
	if d.TempMin == nil || d.TempMax == nil {
		return notAvail
	}
	return fmt.Sprintf("%.1f/%.1f°C", *d.TempMax, *d.TempMin)
}
