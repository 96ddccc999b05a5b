package forecast

import "time"

// DigestDays is the number of days after today covered by the daily digest.
const DigestDays = 6

// dailyAccumulator folds the samples of one calendar day.
type dailyAccumulator struct {
	hasTemp   bool
	tempMin   float64
	tempMax   float64
	stormMax  float64
	condition int
	count     int
}

func (acc *dailyAccumulator) add(s Sample) {
	acc.count++

	if t, ok := s.Value(CodeTemperature); ok {
		switch {
		case !acc.hasTemp:
			acc.hasTemp = true
			acc.tempMin, acc.tempMax = t, t
		case t < acc.tempMin:
			acc.tempMin = t
		case t > acc.tempMax:
			acc.tempMax = t
		}
	}

	if p, ok := s.Value(CodeStorm); ok && p > acc.stormMax {
		acc.stormMax = p
	}

	// First nonzero code of the day sticks.
	if c, ok := s.Value(CodeCondition); ok && acc.condition == 0 {
		acc.condition = int(c)
	}
}

func (a *Aggregator) entry(date time.Time, acc *dailyAccumulator) DailyDigestEntry {
	e := DailyDigestEntry{
		Date:          date,
		Weekday:       date.Weekday().String(),
		StormMax:      acc.stormMax,
		ConditionCode: acc.condition,
		Description:   a.describe(acc.condition),
		SampleCount:   acc.count,
	}
	if acc.hasTemp {
		lo, hi := acc.tempMin, acc.tempMax
		e.TempMin, e.TempMax = &lo, &hi
	}
	return e
}

// Daily groups the feed by UTC calendar date and returns one digest per day in
// today+1 .. today+DigestDays that has at least one sample, in ascending order.
// Days without samples are omitted, so the result holds 0 to DigestDays entries.
func (a *Aggregator) Daily(entries []Entry, now time.Time) ([]DailyDigestEntry, error) {
	days := make(map[time.Time]*dailyAccumulator)
	err := a.each(entries, func(s Sample) {
		d := dateOf(s.Time)
		acc, ok := days[d]
		if !ok {
			acc = &dailyAccumulator{}
			days[d] = acc
		}
		acc.add(s)
	})
	if err != nil {
		return nil, err
	}

	today := dateOf(now)
	out := make([]DailyDigestEntry, 0, DigestDays)
	for i := 1; i <= DigestDays; i++ {
		d := today.AddDate(0, 0, i)
		if acc, ok := days[d]; ok {
			out = append(out, a.entry(d, acc))
		}
	}
	return out, nil
}
