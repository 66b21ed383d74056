package model

import "time"

// FacultyInviteToken lets an invited faculty claim their account. The token
// is single-use and stops working once the faculty sets a password.
type FacultyInviteToken struct {
	ID        int64      `json:"id"`
	FacultyID int64      `json:"faculty_id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"` // nil = never expires
	Used      bool       `json:"used"`
	Created   time.Time  `json:"created"`
}

// IsValid checks if the token can still be redeemed.
func (t *FacultyInviteToken) IsValid(now time.Time) bool {
	if t.Used {
		return false
	}
	if t.ExpiresAt != nil && now.After(*t.ExpiresAt) {
		return false
	}
	return true
}
