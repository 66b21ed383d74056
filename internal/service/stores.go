package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

// Narrow persistence contracts consumed by the services. The pgx
// repositories satisfy them; tests plug in in-memory fakes.

type SlotStore interface {
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.Slot, error)
	CandidatesForOverlap(ctx context.Context, weekday model.Weekday, batchID, facultyID int64) ([]schedule.Candidate, error)
	ListByBatch(ctx context.Context, batchID int64) ([]schedule.Candidate, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]schedule.Candidate, error)
	CountByBatch(ctx context.Context, batchID int64) (int, error)
	Create(ctx context.Context, slot *model.Slot) error
	Update(ctx context.Context, slot *model.Slot) error
	Delete(ctx context.Context, id int64) error
	DeleteByBatch(ctx context.Context, batchID int64) error
	DeleteByFaculty(ctx context.Context, facultyID int64) error
}

type BatchStore interface {
	GetByID(ctx context.Context, id int64) (*model.Batch, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]*model.Batch, error)
	TitleExists(ctx context.Context, adminID int64, title string, excludeID int64) (bool, error)
	Create(ctx context.Context, batch *model.Batch) error
	Update(ctx context.Context, batch *model.Batch) error
	SetActive(ctx context.Context, id int64, active bool) error
	DeleteCascade(ctx context.Context, id int64) error
}

type FacultyStore interface {
	GetByID(ctx context.Context, id int64) (*model.FacultyProfile, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.FacultyProfile, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]*model.FacultyProfile, error)
	ListAssignedToBatch(ctx context.Context, batchID int64) ([]*model.FacultyProfile, error)
	NameExists(ctx context.Context, adminID int64, name string) (bool, error)
	Create(ctx context.Context, faculty *model.FacultyProfile) error
	ClaimAccount(ctx context.Context, id int64) error
	Detach(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type StudentStore interface {
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.StudentProfile, error)
	ListByBatch(ctx context.Context, batchID int64) ([]*model.StudentProfile, error)
	CountByBatch(ctx context.Context, batchID int64) (int, error)
	Create(ctx context.Context, student *model.StudentProfile) error
	Detach(ctx context.Context, id int64) error
}

type InviteTokenStore interface {
	Create(ctx context.Context, token *model.FacultyInviteToken) error
	GetByToken(ctx context.Context, value string) (*model.FacultyInviteToken, error)
	MarkUsed(ctx context.Context, id int64) error
}

type BroadcastStore interface {
	Create(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error
	ListForReceiver(ctx context.Context, audience model.BroadcastAudience, profileID int64) ([]*model.Broadcast, error)
	MarkRead(ctx context.Context, broadcastID int64, audience model.BroadcastAudience, profileID int64) error
}

// Mailer delivers invite links. Email transport lives outside this system.
type Mailer interface {
	SendFacultyInvite(ctx context.Context, email, name, token string) error
}

// Notifier fans a stored broadcast out to its receivers. Delivery lives
// outside this system.
type Notifier interface {
	Deliver(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error
}
