package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

type slotFixture struct {
	service  *SlotService
	slots    *fakeSlotStore
	batches  *fakeBatchStore
	admin    *model.AdminProfile
	batch    *model.Batch
	faculty  *model.FacultyProfile
	stranger *model.AdminProfile
}

func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()

	slots := newFakeSlotStore()
	batches := &fakeBatchStore{}
	faculties := &fakeFacultyStore{}

	admin := &model.AdminProfile{ID: 1, UUID: uuid.New(), Name: "Owner", Timezone: "UTC", Active: true}
	stranger := &model.AdminProfile{ID: 2, UUID: uuid.New(), Name: "Other", Timezone: "UTC", Active: true}

	batch := batches.add(admin.ID, "Morning Batch", 30)
	faculty := faculties.add(admin.ID, "Alice")

	slots.batchTitles[batch.ID] = batch.Title
	slots.facultyNames[faculty.ID] = faculty.Name

	return &slotFixture{
		service:  NewSlotService(slots, batches, faculties, zap.NewNop()),
		slots:    slots,
		batches:  batches,
		admin:    admin,
		batch:    batch,
		faculty:  faculty,
		stranger: stranger,
	}
}

func (fx *slotFixture) createInput(title string, day model.Weekday, start, end model.TimeOfDay) CreateSlotInput {
	return CreateSlotInput{
		Title:       title,
		Weekday:     day,
		StartTime:   start,
		EndTime:     end,
		BatchUUID:   fx.batch.UUID,
		FacultyUUID: fx.faculty.UUID,
	}
}

func minutes(h, m int) model.TimeOfDay {
	return model.TimeOfDay(h*60 + m)
}

func TestCreateSlot(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	got, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	assert.Equal(t, "Algebra", got.Slot.Title)
	assert.Equal(t, "Morning Batch", got.BatchTitle)
	assert.Equal(t, "Alice", got.FacultyName)
	assert.NotZero(t, got.Slot.ID)
	assert.NotEqual(t, uuid.Nil, got.Slot.UUID)
}

func TestCreateSlotRejectsBadTimeOrder(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(9, 0), minutes(8, 0)))
	assert.ErrorIs(t, err, schedule.ErrInvalidTimeRange)

	_, err = fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(9, 0), minutes(9, 0)))
	assert.ErrorIs(t, err, schedule.ErrInvalidTimeRange)

	assert.Empty(t, fx.slots.slots, "nothing may be written on rejection")
}

func TestCreateSlotRejectsInvalidWeekday(t *testing.T) {
	fx := newSlotFixture(t)

	_, err := fx.service.CreateSlot(context.Background(), fx.admin,
		fx.createInput("Algebra", model.Weekday(7), minutes(8, 0), minutes(9, 0)))
	assert.ErrorIs(t, err, schedule.ErrInvalidWeekday)
}

func TestCreateSlotRejectsForeignBatch(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreateSlot(ctx, fx.stranger, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.Error(t, err)
	assert.EqualError(t, err, "The requested batch was not created by you!")
}

func TestCreateSlotRejectsUnknownReferences(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	in := fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0))
	in.BatchUUID = uuid.New()
	_, err := fx.service.CreateSlot(ctx, fx.admin, in)
	assert.ErrorIs(t, err, schedule.ErrBatchNotFound)

	in = fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0))
	in.FacultyUUID = uuid.New()
	_, err = fx.service.CreateSlot(ctx, fx.admin, in)
	assert.ErrorIs(t, err, schedule.ErrFacultyNotFound)
}

func TestCreateSlotDetectsBatchOverlap(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	_, err = fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Geometry", model.Monday, minutes(8, 30), minutes(9, 30)))
	assert.EqualError(t, err, "Requested timing overlaps with 'Algebra' (08:00 - 09:00)!")

	// Other weekdays and adjacent timings stay free.
	_, err = fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Geometry", model.Tuesday, minutes(8, 30), minutes(9, 30)))
	assert.NoError(t, err)
	_, err = fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Physics", model.Monday, minutes(9, 0), minutes(10, 0)))
	assert.NoError(t, err)
}

func TestCreateSlotDetectsFacultyDoubleBooking(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	// Same faculty teaching a different batch in the same window.
	other := fx.batches.add(fx.admin.ID, "Evening Batch", 30)
	fx.slots.batchTitles[other.ID] = other.Title

	in := fx.createInput("Geometry", model.Monday, minutes(8, 30), minutes(9, 30))
	in.BatchUUID = other.UUID
	_, err = fx.service.CreateSlot(ctx, fx.admin, in)
	assert.EqualError(t, err, "Alice already has a class in Morning Batch at (08:00 - 09:00)!")
}

func TestUpdateSlot(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	createdSlot, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	got, err := fx.service.UpdateSlot(ctx, fx.admin, createdSlot.Slot.UUID, UpdateSlotInput{
		Title:       "Advanced Algebra",
		Weekday:     model.Tuesday,
		StartTime:   minutes(10, 0),
		EndTime:     minutes(11, 30),
		FacultyUUID: fx.faculty.UUID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Advanced Algebra", got.Slot.Title)
	assert.Equal(t, model.Tuesday, got.Slot.Weekday)
	assert.Equal(t, 90, got.Slot.DurationMinutes())
}

func TestUpdateSlotKeepsOwnTiming(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	createdSlot, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	// A title-only update resubmits the stored timing; the slot must not
	// conflict with itself.
	_, err = fx.service.UpdateSlot(ctx, fx.admin, createdSlot.Slot.UUID, UpdateSlotInput{
		Title:       "Renamed",
		Weekday:     model.Monday,
		StartTime:   minutes(8, 0),
		EndTime:     minutes(9, 0),
		FacultyUUID: fx.faculty.UUID,
	})
	assert.NoError(t, err)
}

func TestUpdateSlotRejectsBatchMove(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	createdSlot, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	other := fx.batches.add(fx.admin.ID, "Evening Batch", 30)

	// The move is rejected before any other validation; even the bad time
	// order below never gets reported.
	_, err = fx.service.UpdateSlot(ctx, fx.admin, createdSlot.Slot.UUID, UpdateSlotInput{
		Title:       "Algebra",
		Weekday:     model.Monday,
		StartTime:   minutes(9, 0),
		EndTime:     minutes(8, 0),
		FacultyUUID: fx.faculty.UUID,
		BatchUUID:   &other.UUID,
	})
	assert.ErrorIs(t, err, schedule.ErrBatchMoveForbidden)

	// Echoing the slot's own batch back is fine.
	_, err = fx.service.UpdateSlot(ctx, fx.admin, createdSlot.Slot.UUID, UpdateSlotInput{
		Title:       "Algebra",
		Weekday:     model.Monday,
		StartTime:   minutes(8, 0),
		EndTime:     minutes(9, 0),
		FacultyUUID: fx.faculty.UUID,
		BatchUUID:   &fx.batch.UUID,
	})
	assert.NoError(t, err)
}

func TestUpdateSlotDetectsOverlap(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)
	second, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Geometry", model.Monday, minutes(10, 0), minutes(11, 0)))
	require.NoError(t, err)

	_, err = fx.service.UpdateSlot(ctx, fx.admin, second.Slot.UUID, UpdateSlotInput{
		Title:       "Geometry",
		Weekday:     model.Monday,
		StartTime:   minutes(8, 30),
		EndTime:     minutes(9, 30),
		FacultyUUID: fx.faculty.UUID,
	})
	assert.EqualError(t, err, "Requested timing overlaps with 'Algebra' (08:00 - 09:00)!")
}

func TestUpdateSlotHidesForeignSlots(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	createdSlot, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	_, err = fx.service.UpdateSlot(ctx, fx.stranger, createdSlot.Slot.UUID, UpdateSlotInput{
		Title:       "Taken over",
		Weekday:     model.Monday,
		StartTime:   minutes(8, 0),
		EndTime:     minutes(9, 0),
		FacultyUUID: fx.faculty.UUID,
	})
	assert.ErrorIs(t, err, schedule.ErrSlotNotFound)
}

func TestDeleteSlot(t *testing.T) {
	fx := newSlotFixture(t)
	ctx := context.Background()

	createdSlot, err := fx.service.CreateSlot(ctx, fx.admin, fx.createInput("Algebra", model.Monday, minutes(8, 0), minutes(9, 0)))
	require.NoError(t, err)

	gone, err := fx.service.DeleteSlot(ctx, fx.admin, createdSlot.Slot.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", gone.Title)
	assert.Empty(t, fx.slots.slots)

	_, err = fx.service.DeleteSlot(ctx, fx.admin, createdSlot.Slot.UUID)
	assert.ErrorIs(t, err, schedule.ErrSlotNotFound)
}
