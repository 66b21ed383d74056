package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

var (
	ErrMaxStudentsNotPositive = errors.New("Max Students has to be greater than 0!")
	ErrMaxStudentsBelowCount  = errors.New("Max students cant be lower than current student count!")
)

type BatchService struct {
	batchStore   BatchStore
	slotStore    SlotStore
	studentStore StudentStore
	facultyStore FacultyStore
	logger       *zap.Logger
}

func NewBatchService(batchStore BatchStore, slotStore SlotStore, studentStore StudentStore, facultyStore FacultyStore, logger *zap.Logger) *BatchService {
	return &BatchService{
		batchStore:   batchStore,
		slotStore:    slotStore,
		studentStore: studentStore,
		facultyStore: facultyStore,
		logger:       logger,
	}
}

// CreateBatch validates the per-admin title uniqueness and capacity rules
// before persisting.
func (s *BatchService) CreateBatch(ctx context.Context, admin *model.AdminProfile, title string, onboardStudents bool, maxStudents int) (*model.Batch, error) {
	if maxStudents <= 0 {
		return nil, ErrMaxStudentsNotPositive
	}

	exists, err := s.batchStore.TitleExists(ctx, admin.ID, title, 0)
	if err != nil {
		return nil, fmt.Errorf("check batch title: %w", err)
	}
	if exists {
		return nil, schedule.ErrDuplicateTitle
	}

	batch := &model.Batch{
		AdminID:         admin.ID,
		Title:           title,
		OnboardStudents: onboardStudents,
		MaxStudents:     maxStudents,
	}

	if err := s.batchStore.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	s.logger.Info("Batch created",
		zap.Int64("batch_id", batch.ID),
		zap.Int64("admin_id", admin.ID),
		zap.String("title", batch.Title))

	return batch, nil
}

// UpdateBatch rewrites title, onboarding flag and capacity. Keeping the
// current title is allowed; the capacity may not drop below the current
// enrollment.
func (s *BatchService) UpdateBatch(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID, title string, onboardStudents bool, maxStudents int) (*model.Batch, error) {
	batch, err := s.loadOwnedBatch(ctx, admin, batchUUID)
	if err != nil {
		return nil, err
	}

	if maxStudents <= 0 {
		return nil, ErrMaxStudentsNotPositive
	}

	enrolled, err := s.studentStore.CountByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if maxStudents < enrolled {
		return nil, ErrMaxStudentsBelowCount
	}

	exists, err := s.batchStore.TitleExists(ctx, admin.ID, title, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("check batch title: %w", err)
	}
	if exists {
		return nil, schedule.ErrDuplicateTitle
	}

	batch.Title = title
	batch.OnboardStudents = onboardStudents
	batch.MaxStudents = maxStudents

	if err := s.batchStore.Update(ctx, batch); err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}

	return batch, nil
}

// SetActive toggles the soft pause flag of a batch.
func (s *BatchService) SetActive(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID, active bool) error {
	batch, err := s.loadOwnedBatch(ctx, admin, batchUUID)
	if err != nil {
		return err
	}

	if err := s.batchStore.SetActive(ctx, batch.ID, active); err != nil {
		return fmt.Errorf("set batch active: %w", err)
	}

	return nil
}

// DeletePreview lists what a batch deletion would take with it: its slots
// and its enrolled students.
type DeletePreview struct {
	Slots    []schedule.Candidate
	Students []*model.StudentProfile
}

func (s *BatchService) DeletePreview(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID) (*DeletePreview, error) {
	batch, err := s.loadOwnedBatch(ctx, admin, batchUUID)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotStore.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	students, err := s.studentStore.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return &DeletePreview{Slots: slots, Students: students}, nil
}

// DeleteBatch removes the batch with its slots and detaches its students,
// atomically.
func (s *BatchService) DeleteBatch(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID) error {
	batch, err := s.loadOwnedBatch(ctx, admin, batchUUID)
	if err != nil {
		return err
	}

	if err := s.batchStore.DeleteCascade(ctx, batch.ID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}

	s.logger.Info("Batch removed",
		zap.Int64("batch_id", batch.ID),
		zap.Int64("admin_id", admin.ID),
		zap.String("title", batch.Title))

	return nil
}

// BatchStats is the aggregate view shown in batch listings.
type BatchStats struct {
	Batch          *model.Batch
	TotalStudents  int
	TotalClasses   int
	TotalFaculties int
	Faculties      []*model.FacultyProfile
}

// ListBatches returns every batch of the admin with its aggregates.
func (s *BatchService) ListBatches(ctx context.Context, admin *model.AdminProfile) ([]*BatchStats, error) {
	batches, err := s.batchStore.ListByAdmin(ctx, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	stats := make([]*BatchStats, 0, len(batches))
	for _, batch := range batches {
		st, err := s.statsFor(ctx, batch)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, nil
}

// GetBatch returns one owned batch with its aggregates.
func (s *BatchService) GetBatch(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID) (*BatchStats, error) {
	batch, err := s.loadOwnedBatch(ctx, admin, batchUUID)
	if err != nil {
		return nil, err
	}
	return s.statsFor(ctx, batch)
}

func (s *BatchService) statsFor(ctx context.Context, batch *model.Batch) (*BatchStats, error) {
	students, err := s.studentStore.CountByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}

	classes, err := s.slotStore.CountByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("count classes: %w", err)
	}

	faculties, err := s.facultyStore.ListAssignedToBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list assigned faculties: %w", err)
	}

	return &BatchStats{
		Batch:          batch,
		TotalStudents:  students,
		TotalClasses:   classes,
		TotalFaculties: len(faculties),
		Faculties:      faculties,
	}, nil
}

func (s *BatchService) loadOwnedBatch(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID) (*model.Batch, error) {
	batch, err := s.batchStore.GetByUUID(ctx, batchUUID)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if batch == nil || batch.AdminID != admin.ID {
		return nil, schedule.ErrBatchNotFound
	}
	return batch, nil
}
