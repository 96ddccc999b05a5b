package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsNoMatchingHour(t *testing.T) {
	slots, err := NewAggregator().Slots([]Entry{entry(at(0, 10), param("t", 5.0))}, now)
	require.NoError(t, err)
	assert.Nil(t, slots.Morning)
	assert.Nil(t, slots.Noon)
	assert.Nil(t, slots.Evening)
}

func TestSlotsFirstMatchWins(t *testing.T) {
	feed := []Entry{
		entry(at(1, 13), param("t", 12.0)),
		entry(at(1, 13), param("t", 99.0)),
	}

	slots, err := NewAggregator().Slots(feed, now)
	require.NoError(t, err)
	require.NotNil(t, slots.Noon)
	assert.Equal(t, 13, slots.Noon.Hour)
	assert.Equal(t, 12.0, slots.Noon.Parameters["t"])
	assert.Nil(t, slots.Morning)
	assert.Nil(t, slots.Evening)
}

func TestSlotsTodayAndTomorrowOnly(t *testing.T) {
	feed := []Entry{
		entry(at(-1, 8), param("t", -1)),
		entry(at(2, 8), param("t", 2)),
		entry(at(0, 8), param("t", 0)), // earlier than now, still today
		entry(at(0, 19), param("t", 19)),
		entry(at(1, 8), param("t", 108)), // tomorrow, Morning already taken
		entry(at(1, 13), param("t", 113)),
		entry(at(1, 19), param("t", 119)),
	}

	slots, err := NewAggregator().Slots(feed, now)
	require.NoError(t, err)

	require.NotNil(t, slots.Morning)
	assert.Equal(t, 0.0, slots.Morning.Parameters["t"])
	require.NotNil(t, slots.Noon)
	assert.Equal(t, 113.0, slots.Noon.Parameters["t"])
	require.NotNil(t, slots.Evening)
	assert.Equal(t, 19.0, slots.Evening.Parameters["t"])

	today := dateOf(now)
	for _, sh := range SlotHours {
		s := slots.Slot(sh.Label)
		require.NotNil(t, s)
		assert.Equal(t, sh.Hour, s.Hour)
		assert.Equal(t, sh.Hour, s.Time.Hour())
		d := dateOf(s.Time)
		assert.True(t, d.Equal(today) || d.Equal(today.AddDate(0, 0, 1)))
	}
}

func TestSlotsHourFromNormalizedTime(t *testing.T) {
	// 15:00+02:00 is 13:00 UTC.
	ts := dateOf(now).AddDate(0, 0, 1).Add(15 * time.Hour).Format("2006-01-02T15:04:05") + "+02:00"
	slots, err := NewAggregator().Slots([]Entry{entry(ts, param("t", 4))}, now)
	require.NoError(t, err)
	require.NotNil(t, slots.Noon)
	assert.Equal(t, 13, slots.Noon.Hour)
	assert.Nil(t, slots.Slot("Afternoon"))
}

func TestSlotsNowInOtherZone(t *testing.T) {
	// 01:00 in UTC+3 on the 17th is still the 16th in UTC.
	local := time.Date(2026, 10, 17, 1, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	slots, err := NewAggregator().Slots([]Entry{entry(at(0, 8), param("t", 1))}, local)
	require.NoError(t, err)
	assert.NotNil(t, slots.Morning)
}

func TestSlotsMalformed(t *testing.T) {
	feed := []Entry{
		entry(at(1, 8), param("t", 1)),
		entry("not-a-time"),
		entry(at(1, 13), param("t", 2)),
	}

	_, err := NewAggregator().Slots(feed, now)
	assert.ErrorIs(t, err, ErrMalformedEntry)

	slots, err := NewAggregator(WithPolicy(SkipMalformed)).Slots(feed, now)
	require.NoError(t, err)
	assert.NotNil(t, slots.Morning)
	assert.NotNil(t, slots.Noon)
}

func TestSlotsEmptyFeed(t *testing.T) {
	slots, err := NewAggregator().Slots(nil, now)
	require.NoError(t, err)
	assert.Equal(t, SlotForecasts{}, slots)
}
