package forecast

import "time"

// Slot labels.
const (
	LabelMorning = "Morning"
	LabelNoon    = "Noon"
	LabelEvening = "Evening"
)

// SlotHour binds a time-of-day slot to the UTC hour it is sampled at.
type SlotHour struct {
	Hour  int
	Label string
}

// SlotHours lists the slots in display order.
var SlotHours = []SlotHour{
	{Hour: 8, Label: LabelMorning},
	{Hour: 13, Label: LabelNoon},
	{Hour: 19, Label: LabelEvening},
}

// Slots picks, for today and tomorrow relative to now, the first sample in feed
// order at each slot hour. Samples on other dates are ignored even when the hour
// matches. Empty slots stay nil.
func (a *Aggregator) Slots(entries []Entry, now time.Time) (SlotForecasts, error) {
	today := dateOf(now)
	tomorrow := today.AddDate(0, 0, 1)

	var out SlotForecasts
	err := a.each(entries, func(s Sample) {
		if d := dateOf(s.Time); !d.Equal(today) && !d.Equal(tomorrow) {
			return
		}

		hour := s.Time.Hour()
		for _, sh := range SlotHours {
			if sh.Hour != hour {
				continue
			}
			slot := out.slotRef(sh.Label)
			if *slot == nil {
				*slot = &SlotForecast{Time: s.Time, Hour: hour, Parameters: s.Parameters}
			}
		}
	})
	if err != nil {
		return SlotForecasts{}, err
	}
	return out, nil
}

func (s *SlotForecasts) slotRef(label string) **SlotForecast {
	switch label {
	case LabelMorning:
		return &s.Morning
	case LabelNoon:
		return &s.Noon
	default:
		return &s.Evening
	}
}
