package model

import (
	"time"

	"github.com/google/uuid"
)

type Batch struct {
	ID              int64     `json:"id"`
	UUID            uuid.UUID `json:"uuid"`
	AdminID         int64     `json:"admin_id"`
	Title           string    `json:"title"` // unique per admin, case-insensitive
	Active          bool      `json:"active"`
	OnboardStudents bool      `json:"onboard_students"`
	MaxStudents     int       `json:"max_students"`
	Created         time.Time `json:"created"`
}
