package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/i474232898/smhi-forecast-digest/internal/forecast"
	"github.com/i474232898/smhi-forecast-digest/internal/symbols"
	"github.com/i474232898/smhi-forecast-digest/internal/weather"
)

// RenderCoverage writes the time coverage and parameter inventory of a feed.
func RenderCoverage(w io.Writer, r weather.CoverageReport) error {
	var b strings.Builder
	c := r.Coverage

	fmt.Fprintf(&b, "Feed coverage for %s (provider %s)\n", r.Location, r.Provider)
	if !r.ApprovedTime.IsZero() {
		fmt.Fprintf(&b, "  Approved Time:  %s\n", r.ApprovedTime.UTC().Format(timeLayout))
	}
	if !r.ReferenceTime.IsZero() {
		fmt.Fprintf(&b, "  Reference Time: %s\n", r.ReferenceTime.UTC().Format(timeLayout))
	}
	fmt.Fprintf(&b, "  Total Entries:  %d\n", c.Entries)
	if c.Entries == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}

	hours := c.Duration.Hours()
	fmt.Fprintf(&b, "\nTime Coverage:\n")
	fmt.Fprintf(&b, "  First Entry:    %s\n", c.First.Format(timeLayout))
	fmt.Fprintf(&b, "  Last Entry:     %s\n", c.Last.Format(timeLayout))
	fmt.Fprintf(&b, "  Duration:       %.0f hours (%.1f days)\n", hours, hours/24)
	fmt.Fprintf(&b, "  Days Covered:   %d days\n", len(c.Days))
	fmt.Fprintf(&b, "  Average Gap:    %.1f hours\n", c.AverageInterval.Hours())
	if !c.Ordered {
		b.WriteString("  WARNING: entries are not in chronological order\n")
	}

	b.WriteString("\nDaily Breakdown:\n")
	for i, d := range c.Days {
		fmt.Fprintf(&b, "  Day %d: %s %-9s - %2d entries (%02d:00-%02d:00)\n",
			i, d.Date.Format("2006-01-02"), d.Weekday, d.Entries, d.FirstHour, d.LastHour)
	}

	byName := make(map[string]forecast.ParameterCoverage, len(c.Parameters))
	for _, p := range c.Parameters {
		byName[p.Name] = p
	}

	fmt.Fprintf(&b, "\nParameters (%d):\n", len(c.Parameters))
	fmt.Fprintf(&b, "  %-12s | %-25s | %-8s | %s\n", "Parameter", "Description", "Unit", "Example Value")
	listed := make(map[string]bool)
	for _, g := range symbols.ParameterGroups {
		header := false
		for _, code := range g.Codes {
			p, ok := byName[code]
			if !ok {
				continue
			}
			if !header {
				fmt.Fprintf(&b, "\n  [%s]\n", g.Name)
				header = true
			}
			writeParameter(&b, p)
			listed[code] = true
		}
	}

	other := false
	for _, p := range c.Parameters {
		if listed[p.Name] {
			continue
		}
		if !other {
			b.WriteString("\n  [Other]\n")
			other = true
		}
		writeParameter(&b, p)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeParameter(b *strings.Builder, p forecast.ParameterCoverage) {
	info := symbols.Parameter(p.Name)
	example := notAvail
	if p.Example != nil {
		example = strconv.FormatFloat(*p.Example, 'f', -1, 64)
	}
	if p.Level != nil {
		example += " @" + strconv.FormatFloat(*p.Level, 'f', -1, 64) + p.LevelType
	}
	fmt.Fprintf(b, "  %-12s | %-25s | %-8s | %s\n", p.Name, info.Description, info.Unit, example)
}
