package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(9*60+30), got)

	got, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), got)

	got, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(23*60+59), got)
}

func TestParseTimeOfDayRejectsBadInput(t *testing.T) {
	for _, input := range []string{"24:00", "12:60", "garbage", "", "-1:30"} {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay(9*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(23*60+59).String())
}

func TestWeekdayFromTime(t *testing.T) {
	// 2026-08-31 is a Monday, 2026-09-06 a Sunday.
	monday := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, Monday, WeekdayFromTime(monday))
	assert.Equal(t, Sunday, WeekdayFromTime(sunday))
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.False(t, Weekday(7).Valid())
	assert.False(t, Weekday(-1).Valid())
}

func TestDuration(t *testing.T) {
	start, _ := ParseTimeOfDay("09:00")
	end, _ := ParseTimeOfDay("10:30")
	assert.Equal(t, 90, Duration(start, end))
}

func TestBefore(t *testing.T) {
	nine := TimeOfDay(9 * 60)
	ten := TimeOfDay(10 * 60)

	assert.True(t, Before(Monday, ten, Tuesday, nine))
	assert.True(t, Before(Monday, nine, Monday, ten))
	assert.False(t, Before(Monday, nine, Monday, nine))
	assert.False(t, Before(Friday, nine, Monday, ten))
}

func TestOnDate(t *testing.T) {
	date := time.Date(2026, 8, 31, 23, 45, 0, 0, time.UTC)
	anchored := TimeOfDay(9*60 + 15).OnDate(date)

	assert.Equal(t, time.Date(2026, 8, 31, 9, 15, 0, 0, time.UTC), anchored)
}
