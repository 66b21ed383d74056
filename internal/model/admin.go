package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminProfile struct {
	ID       int64     `json:"id"`
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Timezone string    `json:"timezone"` // IANA name, e.g. "Asia/Kolkata"
	Active   bool      `json:"active"`
	Created  time.Time `json:"created"`
}

// Location resolves the admin's configured timezone, falling back to UTC
// when the stored name is empty or unknown.
func (a *AdminProfile) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
