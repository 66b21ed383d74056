package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

var (
	ErrDuplicateFacultyName = errors.New("You already have a faculty with same name!")
	ErrInviteTokenInvalid   = errors.New("Invite link is invalid or has expired!")
)

const inviteTokenTTL = 7 * 24 * time.Hour

type FacultyService struct {
	facultyStore FacultyStore
	slotStore    SlotStore
	tokenStore   InviteTokenStore
	mailer       Mailer
	clock        schedule.Clock
	logger       *zap.Logger
}

func NewFacultyService(facultyStore FacultyStore, slotStore SlotStore, tokenStore InviteTokenStore, mailer Mailer, clock schedule.Clock, logger *zap.Logger) *FacultyService {
	return &FacultyService{
		facultyStore: facultyStore,
		slotStore:    slotStore,
		tokenStore:   tokenStore,
		mailer:       mailer,
		clock:        clock,
		logger:       logger,
	}
}

// AddFaculty creates a faculty profile. With an email an invite token is
// issued and mailed, leaving the profile in INVITED state; without one the
// profile stays UNVERIFIED.
func (s *FacultyService) AddFaculty(ctx context.Context, admin *model.AdminProfile, name string, email *string) (*model.FacultyProfile, error) {
	exists, err := s.facultyStore.NameExists(ctx, admin.ID, name)
	if err != nil {
		return nil, fmt.Errorf("check faculty name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateFacultyName
	}

	faculty := &model.FacultyProfile{
		AdminID: &admin.ID,
		Name:    name,
		Email:   email,
	}

	if err := s.facultyStore.Create(ctx, faculty); err != nil {
		return nil, fmt.Errorf("create faculty: %w", err)
	}

	if email != nil {
		if err := s.issueInvite(ctx, faculty); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Faculty added",
		zap.Int64("faculty_id", faculty.ID),
		zap.Int64("admin_id", admin.ID),
		zap.String("status", string(faculty.Status())))

	return faculty, nil
}

func (s *FacultyService) issueInvite(ctx context.Context, faculty *model.FacultyProfile) error {
	expires := s.clock.Now().Add(inviteTokenTTL)
	token := &model.FacultyInviteToken{
		FacultyID: faculty.ID,
		Token:     newInviteToken(),
		ExpiresAt: &expires,
	}

	if err := s.tokenStore.Create(ctx, token); err != nil {
		return fmt.Errorf("create invite token: %w", err)
	}

	if err := s.mailer.SendFacultyInvite(ctx, *faculty.Email, faculty.Name, token.Token); err != nil {
		return fmt.Errorf("send invite: %w", err)
	}

	return nil
}

// VerifyInvite resolves a token to the faculty it invites, without
// consuming it. Used to populate the signup form.
func (s *FacultyService) VerifyInvite(ctx context.Context, tokenValue string) (*model.FacultyProfile, error) {
	token, err := s.tokenStore.GetByToken(ctx, tokenValue)
	if err != nil {
		return nil, fmt.Errorf("get invite token: %w", err)
	}
	if token == nil || !token.IsValid(s.clock.Now()) {
		return nil, ErrInviteTokenInvalid
	}

	faculty, err := s.facultyStore.GetByID(ctx, token.FacultyID)
	if err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return nil, ErrInviteTokenInvalid
	}

	return faculty, nil
}

// ClaimInvite consumes a token and marks the faculty account usable,
// flipping the derived status from INVITED to VERIFIED.
func (s *FacultyService) ClaimInvite(ctx context.Context, tokenValue string) (*model.FacultyProfile, error) {
	token, err := s.tokenStore.GetByToken(ctx, tokenValue)
	if err != nil {
		return nil, fmt.Errorf("get invite token: %w", err)
	}
	if token == nil || !token.IsValid(s.clock.Now()) {
		return nil, ErrInviteTokenInvalid
	}

	if err := s.facultyStore.ClaimAccount(ctx, token.FacultyID); err != nil {
		return nil, fmt.Errorf("claim account: %w", err)
	}

	if err := s.tokenStore.MarkUsed(ctx, token.ID); err != nil {
		return nil, fmt.Errorf("mark token used: %w", err)
	}

	faculty, err := s.facultyStore.GetByID(ctx, token.FacultyID)
	if err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}

	s.logger.Info("Faculty account claimed",
		zap.Int64("faculty_id", token.FacultyID))

	return faculty, nil
}

// ListFaculties returns the admin's faculties with their derived status.
func (s *FacultyService) ListFaculties(ctx context.Context, admin *model.AdminProfile) ([]*model.FacultyProfile, error) {
	faculties, err := s.facultyStore.ListByAdmin(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	return faculties, nil
}

// GetFaculty returns one owned faculty.
func (s *FacultyService) GetFaculty(ctx context.Context, admin *model.AdminProfile, facultyUUID uuid.UUID) (*model.FacultyProfile, error) {
	faculty, err := s.facultyStore.GetByUUID(ctx, facultyUUID)
	if err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil || faculty.AdminID == nil || *faculty.AdminID != admin.ID {
		return nil, schedule.ErrFacultyNotFound
	}
	return faculty, nil
}

// RemoveFaculty takes a faculty away from the admin along with all its
// slots. A verified profile is detached so its account survives; an
// unverified or merely invited one is deleted outright.
func (s *FacultyService) RemoveFaculty(ctx context.Context, admin *model.AdminProfile, facultyUUID uuid.UUID) error {
	faculty, err := s.GetFaculty(ctx, admin, facultyUUID)
	if err != nil {
		return err
	}

	if err := s.slotStore.DeleteByFaculty(ctx, faculty.ID); err != nil {
		return fmt.Errorf("delete faculty slots: %w", err)
	}

	if faculty.Status() == model.FacultyStatusVerified {
		err = s.facultyStore.Detach(ctx, faculty.ID)
	} else {
		err = s.facultyStore.Delete(ctx, faculty.ID)
	}
	if err != nil {
		return fmt.Errorf("remove faculty: %w", err)
	}

	s.logger.Info("Faculty removed",
		zap.Int64("faculty_id", faculty.ID),
		zap.Int64("admin_id", admin.ID),
		zap.String("status", string(faculty.Status())))

	return nil
}

func newInviteToken() string {
	buf := make([]byte, 24)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
