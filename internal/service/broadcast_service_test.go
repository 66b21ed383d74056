package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type fakeBroadcastStore struct {
	broadcasts []*model.Broadcast
	receivers  map[int64][]model.BroadcastReceiver
	nextID     int64
}

func (f *fakeBroadcastStore) Create(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error {
	f.nextID++
	broadcast.ID = f.nextID
	broadcast.Created = time.Now()
	f.broadcasts = append(f.broadcasts, broadcast)
	if f.receivers == nil {
		f.receivers = map[int64][]model.BroadcastReceiver{}
	}
	f.receivers[broadcast.ID] = receivers
	return nil
}

func (f *fakeBroadcastStore) ListForReceiver(ctx context.Context, audience model.BroadcastAudience, profileID int64) ([]*model.Broadcast, error) {
	var out []*model.Broadcast
	for _, broadcast := range f.broadcasts {
		for _, r := range f.receivers[broadcast.ID] {
			if r.Audience == audience && r.ProfileID == profileID {
				out = append(out, broadcast)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBroadcastStore) MarkRead(ctx context.Context, broadcastID int64, audience model.BroadcastAudience, profileID int64) error {
	receivers := f.receivers[broadcastID]
	for i := range receivers {
		if receivers[i].Audience == audience && receivers[i].ProfileID == profileID {
			receivers[i].Read = true
			return nil
		}
	}
	return errors.New("broadcast receiver not found")
}

type fakeNotifier struct {
	delivered int
}

func (f *fakeNotifier) Deliver(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error {
	f.delivered++
	return nil
}

type broadcastFixture struct {
	service   *BroadcastService
	store     *fakeBroadcastStore
	notifier  *fakeNotifier
	batches   *fakeBatchStore
	faculties *fakeFacultyStore
	students  *fakeStudentStore
	admin     *model.AdminProfile
	batch     *model.Batch
	verified  *model.FacultyProfile
}

func newBroadcastFixture(t *testing.T) *broadcastFixture {
	t.Helper()

	store := &fakeBroadcastStore{}
	notifier := &fakeNotifier{}
	batches := &fakeBatchStore{}
	faculties := &fakeFacultyStore{assigned: map[int64][]*model.FacultyProfile{}}
	students := &fakeStudentStore{}

	admin := &model.AdminProfile{ID: 1, UUID: uuid.New(), Name: "Owner", Timezone: "UTC", Active: true}
	batch := batches.add(admin.ID, "Morning Batch", 30)

	// One verified faculty, one merely invited; only the first can receive.
	joined := time.Now()
	verified := faculties.add(admin.ID, "Alice")
	verified.Email = strptr("alice@example.com")
	verified.PasswordSet = true
	verified.Joined = &joined
	invited := faculties.add(admin.ID, "Bob")
	invited.Email = strptr("bob@example.com")

	faculties.assigned[batch.ID] = []*model.FacultyProfile{verified}
	students.add(batch.ID, "Carol", "carol@example.com")

	return &broadcastFixture{
		service:   NewBroadcastService(store, batches, faculties, students, notifier, zap.NewNop()),
		store:     store,
		notifier:  notifier,
		batches:   batches,
		faculties: faculties,
		students:  students,
		admin:     admin,
		batch:     batch,
		verified:  verified,
	}
}

func TestSendToEveryone(t *testing.T) {
	fx := newBroadcastFixture(t)

	count, err := fx.service.Send(context.Background(), fx.admin, model.BroadcastTargetEveryone, "Holiday on Friday!")
	require.NoError(t, err)

	// The verified faculty plus the one student; the invited faculty has
	// no account yet.
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, fx.notifier.delivered)
	require.Len(t, fx.store.broadcasts, 1)
}

func TestSendToSingleAudience(t *testing.T) {
	fx := newBroadcastFixture(t)
	ctx := context.Background()

	count, err := fx.service.Send(ctx, fx.admin, model.BroadcastTargetFaculty, "Staff meeting")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = fx.service.Send(ctx, fx.admin, model.BroadcastTargetStudent, "Homework due")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSendToBatch(t *testing.T) {
	fx := newBroadcastFixture(t)

	count, err := fx.service.Send(context.Background(), fx.admin, fx.batch.UUID.String(), "Class moved")
	require.NoError(t, err)

	// Assigned verified faculty plus the batch's student.
	assert.Equal(t, 2, count)
}

func TestSendRejectsBadTarget(t *testing.T) {
	fx := newBroadcastFixture(t)
	ctx := context.Background()

	_, err := fx.service.Send(ctx, fx.admin, "not-a-target", "hello")
	assert.ErrorIs(t, err, ErrBroadcastBadTarget)

	_, err = fx.service.Send(ctx, fx.admin, uuid.New().String(), "hello")
	assert.ErrorIs(t, err, ErrBroadcastBadTarget)

	// A batch of another admin is as invalid as a random UUID.
	stranger := &model.AdminProfile{ID: 2, UUID: uuid.New(), Name: "Other", Timezone: "UTC", Active: true}
	_, err = fx.service.Send(ctx, stranger, fx.batch.UUID.String(), "hello")
	assert.ErrorIs(t, err, ErrBroadcastBadTarget)
}

func TestSendRejectsOverlongText(t *testing.T) {
	fx := newBroadcastFixture(t)

	_, err := fx.service.Send(context.Background(), fx.admin, model.BroadcastTargetEveryone,
		strings.Repeat("x", model.BroadcastMaxLength+1))
	assert.ErrorIs(t, err, ErrBroadcastTooLong)
	assert.Empty(t, fx.store.broadcasts)
}

func TestSendRejectsEmptyAudience(t *testing.T) {
	fx := newBroadcastFixture(t)

	stranger := &model.AdminProfile{ID: 2, UUID: uuid.New(), Name: "Other", Timezone: "UTC", Active: true}
	_, err := fx.service.Send(context.Background(), stranger, model.BroadcastTargetEveryone, "hello")
	assert.ErrorIs(t, err, ErrBroadcastNoReceivers)
}

func TestInbox(t *testing.T) {
	fx := newBroadcastFixture(t)
	ctx := context.Background()

	_, err := fx.service.Send(ctx, fx.admin, model.BroadcastTargetFaculty, "Staff meeting")
	require.NoError(t, err)

	inbox, err := fx.service.Inbox(ctx, model.AudienceFaculty, fx.verified.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Staff meeting", inbox[0].Text)

	empty, err := fx.service.Inbox(ctx, model.AudienceStudent, fx.verified.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarkRead(t *testing.T) {
	fx := newBroadcastFixture(t)
	ctx := context.Background()

	_, err := fx.service.Send(ctx, fx.admin, model.BroadcastTargetFaculty, "Staff meeting")
	require.NoError(t, err)

	require.Len(t, fx.store.broadcasts, 1)
	broadcastID := fx.store.broadcasts[0].ID

	err = fx.service.MarkRead(ctx, broadcastID, model.AudienceFaculty, fx.verified.ID)
	require.NoError(t, err)
	assert.True(t, fx.store.receivers[broadcastID][0].Read)

	err = fx.service.MarkRead(ctx, broadcastID, model.AudienceStudent, fx.verified.ID)
	assert.Error(t, err)
}
