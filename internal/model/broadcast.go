package model

import "time"

// Broadcast target keywords; any other target must be a batch UUID.
const (
	BroadcastTargetEveryone = "EVERYONE"
	BroadcastTargetStudent  = "STUDENT"
	BroadcastTargetFaculty  = "FACULTY"
)

const BroadcastMaxLength = 500

type BroadcastAudience string

const (
	AudienceFaculty BroadcastAudience = "faculty"
	AudienceStudent BroadcastAudience = "student"
)

type Broadcast struct {
	ID            int64     `json:"id"`
	SenderAdminID int64     `json:"sender_admin_id"`
	Text          string    `json:"text"`
	Created       time.Time `json:"created"`
}

// BroadcastReceiver records one recipient of a broadcast and whether they
// have read it.
type BroadcastReceiver struct {
	BroadcastID int64             `json:"broadcast_id"`
	Audience    BroadcastAudience `json:"audience"`
	ProfileID   int64             `json:"profile_id"`
	Read        bool              `json:"read"`
}
