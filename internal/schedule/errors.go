package schedule

import (
	"errors"
	"fmt"

	"github.com/sksingtn/trackr-backend/internal/model"
)

// Validation failures are user-facing: the message of each error is shown
// verbatim to the end user and the operation commits nothing.

var (
	ErrInvalidTimeRange   = errors.New("Start time cant be greater than or equal to End time!")
	ErrInvalidWeekday     = errors.New("Weekday must be between 0 (Monday) and 6 (Sunday)!")
	ErrSlotNotFound       = errors.New("Slot not found!")
	ErrBatchNotFound      = errors.New("Batch not found!")
	ErrFacultyNotFound    = errors.New("Faculty not found!")
	ErrBatchMoveForbidden = errors.New("Cant move a slot to another batch!")
	ErrDuplicateTitle     = errors.New("Batch with same title already exists!")
)

// OwnershipError marks a batch or faculty that belongs to a different admin.
type OwnershipError struct {
	Resource string // "batch" or "faculty"
	Action   string // "created" for batches, "invited/added" for faculties
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("The requested %s was not %s by you!", e.Resource, e.Action)
}

func NewBatchOwnershipError() *OwnershipError {
	return &OwnershipError{Resource: "batch", Action: "created"}
}

func NewFacultyOwnershipError() *OwnershipError {
	return &OwnershipError{Resource: "faculty", Action: "invited/added"}
}

// BatchOverlapError reports a conflict with another slot of the same batch.
type BatchOverlapError struct {
	Title string
	Start model.TimeOfDay
	End   model.TimeOfDay
}

func (e *BatchOverlapError) Error() string {
	return fmt.Sprintf("Requested timing overlaps with '%s' (%s - %s)!", e.Title, e.Start, e.End)
}

// FacultyOverlapError reports a faculty double-booked across batches.
type FacultyOverlapError struct {
	FacultyName string
	BatchTitle  string
	Start       model.TimeOfDay
	End         model.TimeOfDay
}

func (e *FacultyOverlapError) Error() string {
	return fmt.Sprintf("%s already has a class in %s at (%s - %s)!",
		e.FacultyName, e.BatchTitle, e.Start, e.End)
}

// IsValidationError reports whether err is one of the recoverable
// user-facing rejections, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	var ownership *OwnershipError
	var batchOverlap *BatchOverlapError
	var facultyOverlap *FacultyOverlapError

	return errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrBatchNotFound) ||
		errors.Is(err, ErrFacultyNotFound) ||
		errors.Is(err, ErrBatchMoveForbidden) ||
		errors.Is(err, ErrDuplicateTitle) ||
		errors.As(err, &ownership) ||
		errors.As(err, &batchOverlap) ||
		errors.As(err, &facultyOverlap)
}
