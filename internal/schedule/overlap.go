package schedule

import (
	"sort"

	"github.com/sksingtn/trackr-backend/internal/model"
)

// Candidate pairs a slot with the display names the conflict messages need.
// The slot repository supplies BatchTitle and FacultyName from its joins.
type Candidate struct {
	Slot        *model.Slot
	BatchTitle  string
	FacultyName string
}

// FindConflict scans candidates for a slot whose interval intersects
// [start, end) on the same weekday. Candidates must already be restricted
// to the weekday and to the union scope (same batch OR same faculty); the
// slot being updated, if any, is excluded by excludeID before the scan so
// an update never conflicts with itself.
//
// Two intervals [s, e) and [cs, ce) overlap iff s < ce && cs < e, which
// makes touching endpoints non-overlapping. The first overlapping candidate
// in ascending start order decides the error: a slot of the target batch
// yields a BatchOverlapError, otherwise the candidate belongs to the target
// faculty in another batch and yields a FacultyOverlapError.
func FindConflict(candidates []Candidate, start, end model.TimeOfDay, batchID, facultyID int64, excludeID *int64) error {
	sorted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if excludeID != nil && c.Slot.ID == *excludeID {
			continue
		}
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Slot.StartTime < sorted[j].Slot.StartTime
	})

	for _, c := range sorted {
		if !c.Slot.Overlaps(start, end) {
			continue
		}
		if c.Slot.BatchID == batchID {
			return &BatchOverlapError{
				Title: c.Slot.Title,
				Start: c.Slot.StartTime,
				End:   c.Slot.EndTime,
			}
		}
		return &FacultyOverlapError{
			FacultyName: c.FacultyName,
			BatchTitle:  c.BatchTitle,
			Start:       c.Slot.StartTime,
			End:         c.Slot.EndTime,
		}
	}

	return nil
}

// ValidateTimeRange enforces the strict start < end rule, which also rules
// out midnight-spanning slots.
func ValidateTimeRange(start, end model.TimeOfDay) error {
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}
