package schedule

import (
	"sort"
	"time"

	"github.com/sksingtn/trackr-backend/internal/model"
)

// GroupByWeekday partitions slots into exactly seven buckets in canonical
// weekday order. Weekdays without slots map to empty buckets; slots within
// a bucket come out sorted by start time.
func GroupByWeekday(slots []Candidate) [model.DaysInWeek][]Candidate {
	var grouped [model.DaysInWeek][]Candidate
	for i := range grouped {
		grouped[i] = []Candidate{}
	}
	for _, c := range slots {
		if !c.Slot.Weekday.Valid() {
			continue
		}
		grouped[c.Slot.Weekday] = append(grouped[c.Slot.Weekday], c)
	}
	for i := range grouped {
		bucket := grouped[i]
		sort.Slice(bucket, func(a, b int) bool {
			return bucket[a].Slot.StartTime < bucket[b].Slot.StartTime
		})
	}
	return grouped
}

type OngoingSlot struct {
	Candidate
	TotalSeconds   int64
	ElapsedSeconds int64
}

type PreviousSlot struct {
	Candidate
	EndedSinceSeconds int64
}

type NextSlot struct {
	Candidate
	StartsInSeconds int64
}

// Timeline is the previous/ongoing/next projection for one scope relative
// to a single instant. Any of the three may be nil.
type Timeline struct {
	Previous *PreviousSlot
	Ongoing  *OngoingSlot
	Next     *NextSlot
}

// Project computes the timeline for the given instant, evaluated in now's
// location. Previous and next wrap around the week boundary: with a single
// Friday slot and a Monday "now", the Friday slot is both the previous
// (last week's) and the next (this week's) class.
func Project(slots []Candidate, now time.Time) Timeline {
	currentWeekday := model.WeekdayFromTime(now)
	currentTime := model.TimeOfDayFrom(now)

	ordered := make([]Candidate, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].Slot, ordered[j].Slot
		return model.Before(a.Weekday, a.StartTime, b.Weekday, b.StartTime)
	})

	var tl Timeline

	for _, c := range ordered {
		if c.Slot.Weekday == currentWeekday &&
			c.Slot.StartTime <= currentTime && currentTime < c.Slot.EndTime {
			tl.Ongoing = &OngoingSlot{
				Candidate:      c,
				TotalSeconds:   int64(c.Slot.DurationMinutes()) * 60,
				ElapsedSeconds: int64(now.Sub(c.Slot.StartTime.OnDate(now)).Seconds()),
			}
			break
		}
	}

	if prev := findPrevious(ordered, currentWeekday, currentTime); prev != nil {
		ended := anchor(prev.Slot.Weekday, prev.Slot.EndTime, now)
		if ended.After(now) {
			ended = ended.AddDate(0, 0, -model.DaysInWeek)
		}
		tl.Previous = &PreviousSlot{
			Candidate:         *prev,
			EndedSinceSeconds: int64(now.Sub(ended).Seconds()),
		}
	}

	if next := findNext(ordered, currentWeekday, currentTime); next != nil {
		starts := anchor(next.Slot.Weekday, next.Slot.StartTime, now)
		if !starts.After(now) {
			starts = starts.AddDate(0, 0, model.DaysInWeek)
		}
		tl.Next = &NextSlot{
			Candidate:       *next,
			StartsInSeconds: int64(starts.Sub(now).Seconds()),
		}
	}

	return tl
}

// findPrevious picks the latest slot strictly earlier this week, wrapping
// to the overall latest slot when nothing has ended yet.
func findPrevious(ordered []Candidate, w model.Weekday, t model.TimeOfDay) *Candidate {
	var prev *Candidate
	for i := range ordered {
		c := &ordered[i]
		if (c.Slot.Weekday == w && c.Slot.EndTime < t) || c.Slot.Weekday < w {
			prev = c
		}
	}
	if prev == nil && len(ordered) > 0 {
		prev = &ordered[len(ordered)-1]
	}
	return prev
}

// findNext picks the soonest slot strictly later this week, wrapping to
// the overall earliest slot when the week is exhausted.
func findNext(ordered []Candidate, w model.Weekday, t model.TimeOfDay) *Candidate {
	for i := range ordered {
		c := &ordered[i]
		if (c.Slot.Weekday == w && c.Slot.StartTime > t) || c.Slot.Weekday > w {
			return c
		}
	}
	if len(ordered) > 0 {
		return &ordered[0]
	}
	return nil
}

// anchor places a weekly (weekday, time) on the calendar date nearest to
// now's week, using day-offset = slot weekday - current weekday.
func anchor(w model.Weekday, t model.TimeOfDay, now time.Time) time.Time {
	offset := int(w) - int(model.WeekdayFromTime(now))
	return t.OnDate(now.AddDate(0, 0, offset))
}
