package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile is enrolled in exactly one batch. BatchID is nil once the
// admin removes the student; the profile itself is preserved.
type StudentProfile struct {
	ID      int64     `json:"id"`
	UUID    uuid.UUID `json:"uuid"`
	BatchID *int64    `json:"batch_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Joined  time.Time `json:"joined"`
}

func (s *StudentProfile) Detached() bool {
	return s.BatchID == nil
}
