package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

// SlotService runs the slot create/update/delete workflow: ownership
// validation, time-order validation, overlap detection, commit. Every
// failure aborts the whole operation with nothing written.
type SlotService struct {
	slotStore    SlotStore
	batchStore   BatchStore
	facultyStore FacultyStore
	logger       *zap.Logger
}

func NewSlotService(slotStore SlotStore, batchStore BatchStore, facultyStore FacultyStore, logger *zap.Logger) *SlotService {
	return &SlotService{
		slotStore:    slotStore,
		batchStore:   batchStore,
		facultyStore: facultyStore,
		logger:       logger,
	}
}

type CreateSlotInput struct {
	Title       string
	Weekday     model.Weekday
	StartTime   model.TimeOfDay
	EndTime     model.TimeOfDay
	BatchUUID   uuid.UUID
	FacultyUUID uuid.UUID
}

type UpdateSlotInput struct {
	Title       string
	Weekday     model.Weekday
	StartTime   model.TimeOfDay
	EndTime     model.TimeOfDay
	FacultyUUID uuid.UUID

	// BatchUUID must not be supplied on update; a batch different from the
	// slot's own is rejected before any other validation.
	BatchUUID *uuid.UUID
}

// CreateSlot validates and persists a new weekly slot for the admin.
func (s *SlotService) CreateSlot(ctx context.Context, admin *model.AdminProfile, in CreateSlotInput) (*schedule.Candidate, error) {
	if !in.Weekday.Valid() {
		return nil, schedule.ErrInvalidWeekday
	}
	if err := schedule.ValidateTimeRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	batch, faculty, err := s.resolveOwned(ctx, admin, in.BatchUUID, in.FacultyUUID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, in.Weekday, in.StartTime, in.EndTime, batch.ID, faculty.ID, nil); err != nil {
		return nil, err
	}

	slot := &model.Slot{
		BatchID:   batch.ID,
		FacultyID: faculty.ID,
		Title:     in.Title,
		Weekday:   in.Weekday,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}

	if err := s.slotStore.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("batch_id", batch.ID),
		zap.Int64("faculty_id", faculty.ID),
		zap.String("weekday", slot.Weekday.String()),
		zap.String("timing", fmt.Sprintf("%s - %s", slot.StartTime, slot.EndTime)))

	return &schedule.Candidate{Slot: slot, BatchTitle: batch.Title, FacultyName: faculty.Name}, nil
}

// UpdateSlot mutates faculty, weekday, timing and title of an existing
// slot. The batch is fixed at creation and cannot change.
func (s *SlotService) UpdateSlot(ctx context.Context, admin *model.AdminProfile, slotUUID uuid.UUID, in UpdateSlotInput) (*schedule.Candidate, error) {
	slot, batch, err := s.loadOwnedSlot(ctx, admin, slotUUID)
	if err != nil {
		return nil, err
	}

	if in.BatchUUID != nil && *in.BatchUUID != batch.UUID {
		return nil, schedule.ErrBatchMoveForbidden
	}

	if !in.Weekday.Valid() {
		return nil, schedule.ErrInvalidWeekday
	}
	if err := schedule.ValidateTimeRange(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	faculty, err := s.facultyStore.GetByUUID(ctx, in.FacultyUUID)
	if err != nil {
		return nil, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return nil, schedule.ErrFacultyNotFound
	}
	if faculty.AdminID == nil || *faculty.AdminID != admin.ID {
		return nil, schedule.NewFacultyOwnershipError()
	}

	// The slot under update must never conflict with its own stored timing.
	excludeID := slot.ID
	if err := s.checkOverlap(ctx, in.Weekday, in.StartTime, in.EndTime, batch.ID, faculty.ID, &excludeID); err != nil {
		return nil, err
	}

	slot.FacultyID = faculty.ID
	slot.Title = in.Title
	slot.Weekday = in.Weekday
	slot.StartTime = in.StartTime
	slot.EndTime = in.EndTime

	if err := s.slotStore.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}

	s.logger.Info("Slot updated",
		zap.Int64("slot_id", slot.ID),
		zap.String("weekday", slot.Weekday.String()),
		zap.String("timing", fmt.Sprintf("%s - %s", slot.StartTime, slot.EndTime)))

	return &schedule.Candidate{Slot: slot, BatchTitle: batch.Title, FacultyName: faculty.Name}, nil
}

// DeleteSlot removes a slot and returns its prior state for confirmation.
// No overlap re-check is needed on delete.
func (s *SlotService) DeleteSlot(ctx context.Context, admin *model.AdminProfile, slotUUID uuid.UUID) (*model.Slot, error) {
	slot, _, err := s.loadOwnedSlot(ctx, admin, slotUUID)
	if err != nil {
		return nil, err
	}

	if err := s.slotStore.Delete(ctx, slot.ID); err != nil {
		return nil, fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Slot deleted",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("batch_id", slot.BatchID))

	return slot, nil
}

// loadOwnedSlot fetches a slot and verifies, via its batch, that the
// requesting admin owns it. Slots of other admins are indistinguishable
// from missing ones.
func (s *SlotService) loadOwnedSlot(ctx context.Context, admin *model.AdminProfile, slotUUID uuid.UUID) (*model.Slot, *model.Batch, error) {
	slot, err := s.slotStore.GetByUUID(ctx, slotUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, nil, schedule.ErrSlotNotFound
	}

	batch, err := s.batchStore.GetByID(ctx, slot.BatchID)
	if err != nil {
		return nil, nil, fmt.Errorf("get batch: %w", err)
	}
	if batch == nil || batch.AdminID != admin.ID {
		return nil, nil, schedule.ErrSlotNotFound
	}

	return slot, batch, nil
}

// resolveOwned loads the batch and faculty references and verifies both
// belong to the requesting admin.
func (s *SlotService) resolveOwned(ctx context.Context, admin *model.AdminProfile, batchUUID, facultyUUID uuid.UUID) (*model.Batch, *model.FacultyProfile, error) {
	batch, err := s.batchStore.GetByUUID(ctx, batchUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("get batch: %w", err)
	}
	if batch == nil {
		return nil, nil, schedule.ErrBatchNotFound
	}
	if batch.AdminID != admin.ID {
		return nil, nil, schedule.NewBatchOwnershipError()
	}

	faculty, err := s.facultyStore.GetByUUID(ctx, facultyUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return nil, nil, schedule.ErrFacultyNotFound
	}
	if faculty.AdminID == nil || *faculty.AdminID != admin.ID {
		return nil, nil, schedule.NewFacultyOwnershipError()
	}

	return batch, faculty, nil
}

// checkOverlap fetches the union candidate pool for the weekday and runs
// the conflict scan over it.
func (s *SlotService) checkOverlap(ctx context.Context, weekday model.Weekday, start, end model.TimeOfDay, batchID, facultyID int64, excludeID *int64) error {
	candidates, err := s.slotStore.CandidatesForOverlap(ctx, weekday, batchID, facultyID)
	if err != nil {
		return fmt.Errorf("candidates for overlap: %w", err)
	}

	return schedule.FindConflict(candidates, start, end, batchID, facultyID, excludeID)
}
