package model

import (
	"time"

	"github.com/google/uuid"
)

type FacultyStatus string

const (
	FacultyStatusUnverified FacultyStatus = "UNVERIFIED"
	FacultyStatusInvited    FacultyStatus = "INVITED"
	FacultyStatusVerified   FacultyStatus = "VERIFIED"
)

// FacultyProfile belongs to the admin who added or invited it. AdminID is
// nil once the admin removes the faculty while its teaching history is kept.
type FacultyProfile struct {
	ID      int64     `json:"id"`
	UUID    uuid.UUID `json:"uuid"`
	AdminID *int64    `json:"admin_id"`
	Name    string    `json:"name"`

	// Linked account state, the inputs of the derived status.
	Email       *string    `json:"email"`
	PasswordSet bool       `json:"password_set"`
	Joined      *time.Time `json:"joined"`

	Created time.Time `json:"created"`
}

// Status derives the verification state from the linked-account fields.
// It is recomputed on every read, never stored.
func (f *FacultyProfile) Status() FacultyStatus {
	if f.Email == nil {
		return FacultyStatusUnverified
	}
	if !f.PasswordSet {
		return FacultyStatusInvited
	}
	return FacultyStatusVerified
}

// Detached reports whether the owning admin removed this faculty.
func (f *FacultyProfile) Detached() bool {
	return f.AdminID == nil
}
