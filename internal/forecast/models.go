package forecast

import (
	"time"
)

// Parameter codes the aggregation reads. Everything else is carried through untouched.
const (
	CodeTemperature = "t"
	CodeCondition   = "Wsymb2"
	CodeStorm       = "tstm"
)

// Feed is the decoded point forecast as delivered by the upstream API.
type Feed struct {
	ApprovedTime  time.Time `json:"approvedTime"`
	ReferenceTime time.Time `json:"referenceTime"`
	Geometry      Geometry  `json:"geometry"`
	TimeSeries    []Entry   `json:"timeSeries"`
}

// Geometry holds the forecast point as [[lon, lat]].
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Entry is one raw forecast instant.
type Entry struct {
	ValidTime  string      `json:"validTime"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one named measurement of an entry. Only Values[0] is ever used.
type Parameter struct {
	Name      string    `json:"name"`
	LevelType string    `json:"levelType,omitempty"`
	Level     *float64  `json:"level,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Values    []float64 `json:"values"`
}

// Sample is a flattened entry: one value per parameter code.
// A code absent from Parameters was not reported for that instant.
type Sample struct {
	Time       time.Time          `json:"time"` // always UTC
	Parameters map[string]float64 `json:"parameters"`
}

// Value returns the reported value for code.
func (s Sample) Value(code string) (float64, bool) {
	v, ok := s.Parameters[code]
	return v, ok
}

// SlotForecast is the sample picked for one time-of-day slot.
type SlotForecast struct {
	Time       time.Time          `json:"time"`
	Hour       int                `json:"hour"`
	Parameters map[string]float64 `json:"parameters"`
}

// SlotForecasts holds the Morning/Noon/Evening slots; nil means no matching sample.
type SlotForecasts struct {
	Morning *SlotForecast `json:"Morning"`
	Noon    *SlotForecast `json:"Noon"`
	Evening *SlotForecast `json:"Evening"`
}

// Slot returns the slot with the given label.
func (s SlotForecasts) Slot(label string) *SlotForecast {
	switch label {
	case LabelMorning:
		return s.Morning
	case LabelNoon:
		return s.Noon
	case LabelEvening:
		return s.Evening
	default:
		return nil
	}
}

// DailyDigestEntry summarizes one calendar day (UTC).
// TempMin and TempMax are nil when no sample of the day carried a temperature.
type DailyDigestEntry struct {
	Date          time.Time `json:"date"` // midnight UTC
	Weekday       string    `json:"weekday"`
	TempMin       *float64  `json:"tempMin"`
	TempMax       *float64  `json:"tempMax"`
	StormMax      float64   `json:"stormMax"`
	ConditionCode int       `json:"conditionCode"`
	Description   string    `json:"description"`
	SampleCount   int       `json:"sampleCount"`
}
