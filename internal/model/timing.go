package model

import (
	"fmt"
	"time"
)

// Weekday is the canonical day-of-week ordinal, Monday = 0 .. Sunday = 6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysInWeek = 7
)

var weekdayNames = [DaysInWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// FromTime converts the stdlib weekday (Sunday = 0) to the canonical ordinal.
func WeekdayFromTime(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// TimeOfDay is a wall-clock time with whole-minute granularity,
// stored as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" in 24-hour format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayFrom extracts the wall-clock time from an instant,
// truncated to whole minutes.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < 24*60
}

// String renders "HH:MM" in 24-hour format, the form used in
// conflict messages and timetable labels.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// OnDate anchors the time of day to the given calendar date.
func (t TimeOfDay) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Duration returns the whole minutes between start and end.
// Start must precede end; a slot never spans midnight.
func Duration(start, end TimeOfDay) int {
	return end.Minutes() - start.Minutes()
}

// Before reports whether (w1, t1) precedes (w2, t2) in the canonical
// weekly ordering. It is the total order used for sorting slots.
func Before(w1 Weekday, t1 TimeOfDay, w2 Weekday, t2 TimeOfDay) bool {
	if w1 != w2 {
		return w1 < w2
	}
	return t1 < t2
}
