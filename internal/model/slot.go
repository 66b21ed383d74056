package model

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a recurring weekly time block assigning one faculty to teach in
// one batch. The batch is fixed at creation; faculty, weekday, timing and
// title may change on update. The interval is half-open [StartTime, EndTime)
// and never spans midnight.
type Slot struct {
	ID        int64     `json:"id"`
	UUID      uuid.UUID `json:"uuid"`
	BatchID   int64     `json:"batch_id"`
	FacultyID int64     `json:"faculty_id"`
	Title     string    `json:"title"`
	Weekday   Weekday   `json:"weekday"`
	StartTime TimeOfDay `json:"start_time"`
	EndTime   TimeOfDay `json:"end_time"`

	// Created doubles as the last-modified stamp: every successful update
	// resets it to now so the UI shows "N minutes ago".
	Created time.Time `json:"created"`
}

// DurationMinutes is the slot length in whole minutes.
func (s *Slot) DurationMinutes() int {
	return Duration(s.StartTime, s.EndTime)
}

// Overlaps reports whether the slot's interval intersects [start, end)
// under the strict half-open test. Touching endpoints do not overlap,
// so back-to-back classes are allowed.
func (s *Slot) Overlaps(start, end TimeOfDay) bool {
	return start < s.EndTime && s.StartTime < end
}
