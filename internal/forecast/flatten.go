package forecast

import (
	"errors"
	"strings"
	"time"
)

var errNoLayout = errors.New("no known time layout matches")

// Zone-less layouts are read as UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Flatten converts a raw entry into a Sample, keeping the first value of every
// named parameter that reports at least one value. Parameters without a name or
// without values are dropped. Only the timestamp can make it fail.
func Flatten(e Entry) (Sample, error) {
	return flattenAt(-1, e)
}

func flattenAt(index int, e Entry) (Sample, error) {
	ts, err := ParseTime(e.ValidTime)
	if err != nil {
		return Sample{}, &MalformedEntryError{Index: index, ValidTime: e.ValidTime, Err: err}
	}

	params := make(map[string]float64, len(e.Parameters))
	for _, p := range e.Parameters {
		if p.Name == "" || len(p.Values) == 0 {
			continue
		}
		params[p.Name] = p.Values[0]
	}

	return Sample{Time: ts, Parameters: params}, nil
}

// ParseTime parses a feed timestamp and normalizes it to UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errNoLayout
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errNoLayout
}

// dateOf truncates t to midnight of its UTC calendar day.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
