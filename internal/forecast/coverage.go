package forecast

import (
	"sort"
	"time"
)

// intervalProbe is how many leading gaps the average interval is computed over.
const intervalProbe = 10

// Coverage describes the time span and parameter set of a feed.
type Coverage struct {
	Entries         int                 `json:"entries"`
	First           time.Time           `json:"first"`
	Last            time.Time           `json:"last"`
	Duration        time.Duration       `json:"duration"`
	AverageInterval time.Duration       `json:"averageInterval"`
	Ordered         bool                `json:"ordered"`
	Days            []DayCoverage       `json:"days"`
	Parameters      []ParameterCoverage `json:"parameters"`
}

// DayCoverage counts the entries of one UTC date.
type DayCoverage struct {
	Date      time.Time `json:"date"`
	Weekday   string    `json:"weekday"`
	Entries   int       `json:"entries"`
	FirstHour int       `json:"firstHour"`
	LastHour  int       `json:"lastHour"`
}

// ParameterCoverage is the inventory line of one parameter code.
type ParameterCoverage struct {
	Name      string   `json:"name"`
	Count     int      `json:"count"`
	Example   *float64 `json:"example,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Level     *float64 `json:"level,omitempty"`
	LevelType string   `json:"levelType,omitempty"`
}

// Analyze reports how much of the calendar the feed covers, how regular its
// spacing is and which parameters it carries. Example values, units and levels
// come from the first occurrence of each parameter.
func (a *Aggregator) Analyze(entries []Entry) (Coverage, error) {
	var (
		cov    = Coverage{Ordered: true}
		times  []time.Time
		days   = make(map[time.Time]*DayCoverage)
		params = make(map[string]*ParameterCoverage)
	)

	for i, e := range entries {
		ts, err := ParseTime(e.ValidTime)
		if err != nil {
			merr := &MalformedEntryError{Index: i, ValidTime: e.ValidTime, Err: err}
			if a.policy != SkipMalformed {
				return Coverage{}, merr
			}
			if a.onSkip != nil {
				a.onSkip(merr)
			}
			continue
		}

		if n := len(times); n > 0 && ts.Before(times[n-1]) {
			cov.Ordered = false
		}
		times = append(times, ts)

		d := dateOf(ts)
		dc, ok := days[d]
		if !ok {
			dc = &DayCoverage{Date: d, Weekday: d.Weekday().String(), FirstHour: ts.Hour(), LastHour: ts.Hour()}
			days[d] = dc
		}
		dc.Entries++
		if h := ts.Hour(); h < dc.FirstHour {
			dc.FirstHour = h
		} else if h > dc.LastHour {
			dc.LastHour = h
		}

		for _, p := range e.Parameters {
			if p.Name == "" {
				continue
			}
			pc, ok := params[p.Name]
			if !ok {
				pc = &ParameterCoverage{Name: p.Name, Unit: p.Unit, Level: p.Level, LevelType: p.LevelType}
				if len(p.Values) > 0 {
					v := p.Values[0]
					pc.Example = &v
				}
				params[p.Name] = pc
			}
			pc.Count++
		}
	}

	cov.Entries = len(times)
	if cov.Entries == 0 {
		return cov, nil
	}

	cov.First = times[0]
	cov.Last = times[len(times)-1]
	cov.Duration = cov.Last.Sub(cov.First)

	if gaps := min(intervalProbe, len(times)-1); gaps > 0 {
		var sum time.Duration
		for i := 0; i < gaps; i++ {
			sum += times[i+1].Sub(times[i])
		}
		cov.AverageInterval = sum / time.Duration(gaps)
	}

	cov.Days = make([]DayCoverage, 0, len(days))
	for _, dc := range days {
		cov.Days = append(cov.Days, *dc)
	}
	sort.Slice(cov.Days, func(i, j int) bool { return cov.Days[i].Date.Before(cov.Days[j].Date) })

	cov.Parameters = make([]ParameterCoverage, 0, len(params))
	for _, pc := range params {
		cov.Parameters = append(cov.Parameters, *pc)
	}
	sort.Slice(cov.Parameters, func(i, j int) bool { return cov.Parameters[i].Name < cov.Parameters[j].Name })

	return cov, nil
}
