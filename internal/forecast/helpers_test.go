package forecast

import (
	"time"
)

// now is a fixed reference clock: Friday 2026-10-16 09:30 UTC.
var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func at(day, hour int) string {
	return now.AddDate(0, 0, day).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour).Format(time.RFC3339)
}

func param(name string, values ...float64) Parameter {
	return Parameter{Name: name, Values: values}
}

func entry(validTime string, params ...Parameter) Entry {
	return Entry{ValidTime: validTime, Parameters: params}
}
