package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

var ErrNoClasses = errors.New("No classes found! Either classes are not assigned or paused!")

// TimetableService produces the weekly grouped views and the
// previous/ongoing/next timeline for a batch or faculty scope.
type TimetableService struct {
	slotStore SlotStore
	clock     schedule.Clock
	logger    *zap.Logger
}

func NewTimetableService(slotStore SlotStore, clock schedule.Clock, logger *zap.Logger) *TimetableService {
	return &TimetableService{
		slotStore: slotStore,
		clock:     clock,
		logger:    logger,
	}
}

// WeekView is a full week of slots, one bucket per weekday in canonical
// order, plus the weekday the scope's clock currently points at.
type WeekView struct {
	CurrentWeekday model.Weekday
	Days           [model.DaysInWeek][]schedule.Candidate
}

// BatchWeek groups every slot of a batch by weekday. Empty weekdays are
// present as empty buckets.
func (s *TimetableService) BatchWeek(ctx context.Context, batch *model.Batch, admin *model.AdminProfile) (*WeekView, error) {
	slots, err := s.slotStore.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots by batch: %w", err)
	}

	now := s.clock.Now().In(admin.Location())
	return &WeekView{
		CurrentWeekday: model.WeekdayFromTime(now),
		Days:           schedule.GroupByWeekday(slots),
	}, nil
}

// FacultyWeek groups every slot a faculty teaches by weekday, across all
// active batches of its admin.
func (s *TimetableService) FacultyWeek(ctx context.Context, faculty *model.FacultyProfile, admin *model.AdminProfile) (*WeekView, error) {
	slots, err := s.slotStore.ListByFaculty(ctx, faculty.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots by faculty: %w", err)
	}

	now := s.clock.Now().In(admin.Location())
	return &WeekView{
		CurrentWeekday: model.WeekdayFromTime(now),
		Days:           schedule.GroupByWeekday(slots),
	}, nil
}

// FacultyTimeline projects previous/ongoing/next for the slots a faculty
// teaches, evaluated in the owning admin's timezone.
func (s *TimetableService) FacultyTimeline(ctx context.Context, faculty *model.FacultyProfile, admin *model.AdminProfile) (*schedule.Timeline, error) {
	slots, err := s.slotStore.ListByFaculty(ctx, faculty.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots by faculty: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoClasses
	}

	tl := schedule.Project(slots, s.clock.Now().In(admin.Location()))
	return &tl, nil
}

// BatchTimeline projects previous/ongoing/next for a batch's slots,
// the view students of that batch see.
func (s *TimetableService) BatchTimeline(ctx context.Context, batch *model.Batch, admin *model.AdminProfile) (*schedule.Timeline, error) {
	slots, err := s.slotStore.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("list slots by batch: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoClasses
	}

	tl := schedule.Project(slots, s.clock.Now().In(admin.Location()))
	return &tl, nil
}
