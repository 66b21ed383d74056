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
	ErrOnboardingDisabled = errors.New("This batch is not accepting new students!")
	ErrBatchFull          = errors.New("This batch is already full!")
	ErrStudentNotFound    = errors.New("Student not found!")
)

type StudentService struct {
	studentStore StudentStore
	batchStore   BatchStore
	logger       *zap.Logger
}

func NewStudentService(studentStore StudentStore, batchStore BatchStore, logger *zap.Logger) *StudentService {
	return &StudentService{
		studentStore: studentStore,
		batchStore:   batchStore,
		logger:       logger,
	}
}

// Onboard enrolls a student through a batch's public onboarding link
// (the batch UUID). The batch must be active, accepting students and
// below capacity.
func (s *StudentService) Onboard(ctx context.Context, batchUUID uuid.UUID, name, email string) (*model.StudentProfile, error) {
	batch, err := s.batchStore.GetByUUID(ctx, batchUUID)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if batch == nil || !batch.Active {
		return nil, schedule.ErrBatchNotFound
	}
	if !batch.OnboardStudents {
		return nil, ErrOnboardingDisabled
	}

	enrolled, err := s.studentStore.CountByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if enrolled >= batch.MaxStudents {
		return nil, ErrBatchFull
	}

	student := &model.StudentProfile{
		BatchID: &batch.ID,
		Name:    name,
		Email:   email,
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.logger.Info("Student onboarded",
		zap.Int64("student_id", student.ID),
		zap.Int64("batch_id", batch.ID))

	return student, nil
}

// ListByBatch returns the students of an owned batch.
func (s *StudentService) ListByBatch(ctx context.Context, admin *model.AdminProfile, batchUUID uuid.UUID) ([]*model.StudentProfile, error) {
	batch, err := s.batchStore.GetByUUID(ctx, batchUUID)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if batch == nil || batch.AdminID != admin.ID {
		return nil, schedule.ErrBatchNotFound
	}

	students, err := s.studentStore.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return students, nil
}

// Remove detaches students from their batch; their profiles survive so
// past activity stays attributable.
func (s *StudentService) Remove(ctx context.Context, admin *model.AdminProfile, studentUUIDs []uuid.UUID) error {
	for _, id := range studentUUIDs {
		student, err := s.studentStore.GetByUUID(ctx, id)
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}
		if student == nil || student.BatchID == nil {
			return ErrStudentNotFound
		}

		batch, err := s.batchStore.GetByID(ctx, *student.BatchID)
		if err != nil {
			return fmt.Errorf("get batch: %w", err)
		}
		if batch == nil || batch.AdminID != admin.ID {
			return ErrStudentNotFound
		}

		if err := s.studentStore.Detach(ctx, student.ID); err != nil {
			return fmt.Errorf("detach student: %w", err)
		}
	}

	s.logger.Info("Students removed",
		zap.Int64("admin_id", admin.ID),
		zap.Int("count", len(studentUUIDs)))

	return nil
}
