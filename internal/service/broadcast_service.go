package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

var (
	ErrBroadcastTooLong     = errors.New("Text cant exceed 500 characters!")
	ErrBroadcastBadTarget   = errors.New("Target can only be EVERYONE/STUDENT/FACULTY/valid batch id!")
	ErrBroadcastNoReceivers = errors.New("No recipients exist to receive this broadcast!")
)

type BroadcastService struct {
	broadcastStore BroadcastStore
	batchStore     BatchStore
	facultyStore   FacultyStore
	studentStore   StudentStore
	notifier       Notifier
	logger         *zap.Logger
}

func NewBroadcastService(broadcastStore BroadcastStore, batchStore BatchStore, facultyStore FacultyStore, studentStore StudentStore, notifier Notifier, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{
		broadcastStore: broadcastStore,
		batchStore:     batchStore,
		facultyStore:   facultyStore,
		studentStore:   studentStore,
		notifier:       notifier,
		logger:         logger,
	}
}

// Send resolves the target to its receiver set, stores the broadcast and
// hands it to the delivery collaborator. Target is EVERYONE, STUDENT,
// FACULTY, or the UUID of a batch owned by the sender.
func (s *BroadcastService) Send(ctx context.Context, admin *model.AdminProfile, target, text string) (int, error) {
	if len(text) > model.BroadcastMaxLength {
		return 0, ErrBroadcastTooLong
	}

	receivers, err := s.resolveReceivers(ctx, admin, target)
	if err != nil {
		return 0, err
	}
	if len(receivers) == 0 {
		return 0, ErrBroadcastNoReceivers
	}

	broadcast := &model.Broadcast{
		SenderAdminID: admin.ID,
		Text:          text,
	}

	if err := s.broadcastStore.Create(ctx, broadcast, receivers); err != nil {
		return 0, fmt.Errorf("store broadcast: %w", err)
	}

	if err := s.notifier.Deliver(ctx, broadcast, receivers); err != nil {
		// Delivery is best-effort; the broadcast is already recorded.
		s.logger.Warn("Broadcast delivery failed",
			zap.Int64("broadcast_id", broadcast.ID),
			zap.Error(err))
	}

	s.logger.Info("Broadcast sent",
		zap.Int64("broadcast_id", broadcast.ID),
		zap.String("target", target),
		zap.Int("receivers", len(receivers)))

	return len(receivers), nil
}

func (s *BroadcastService) resolveReceivers(ctx context.Context, admin *model.AdminProfile, target string) ([]model.BroadcastReceiver, error) {
	var batch *model.Batch
	switch target {
	case model.BroadcastTargetEveryone, model.BroadcastTargetStudent, model.BroadcastTargetFaculty:
	default:
		batchUUID, err := uuid.Parse(target)
		if err != nil {
			return nil, ErrBroadcastBadTarget
		}
		batch, err = s.batchStore.GetByUUID(ctx, batchUUID)
		if err != nil {
			return nil, fmt.Errorf("get batch: %w", err)
		}
		if batch == nil || batch.AdminID != admin.ID {
			return nil, ErrBroadcastBadTarget
		}
	}

	var receivers []model.BroadcastReceiver

	// Only verified faculties have an account capable of receiving.
	if target == model.BroadcastTargetEveryone || target == model.BroadcastTargetFaculty || batch != nil {
		var faculties []*model.FacultyProfile
		var err error
		if batch != nil {
			faculties, err = s.facultyStore.ListAssignedToBatch(ctx, batch.ID)
		} else {
			faculties, err = s.facultyStore.ListByAdmin(ctx, admin.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("list faculties: %w", err)
		}
		for _, f := range faculties {
			if f.Status() != model.FacultyStatusVerified {
				continue
			}
			receivers = append(receivers, model.BroadcastReceiver{
				Audience:  model.AudienceFaculty,
				ProfileID: f.ID,
			})
		}
	}

	if target == model.BroadcastTargetEveryone || target == model.BroadcastTargetStudent || batch != nil {
		var students []*model.StudentProfile
		if batch != nil {
			var err error
			students, err = s.studentStore.ListByBatch(ctx, batch.ID)
			if err != nil {
				return nil, fmt.Errorf("list students: %w", err)
			}
		} else {
			batches, err := s.batchStore.ListByAdmin(ctx, admin.ID)
			if err != nil {
				return nil, fmt.Errorf("list batches: %w", err)
			}
			for _, b := range batches {
				bs, err := s.studentStore.ListByBatch(ctx, b.ID)
				if err != nil {
					return nil, fmt.Errorf("list students: %w", err)
				}
				students = append(students, bs...)
			}
		}
		for _, st := range students {
			receivers = append(receivers, model.BroadcastReceiver{
				Audience:  model.AudienceStudent,
				ProfileID: st.ID,
			})
		}
	}

	return receivers, nil
}

// Inbox returns the broadcasts addressed to one profile.
func (s *BroadcastService) Inbox(ctx context.Context, audience model.BroadcastAudience, profileID int64) ([]*model.Broadcast, error) {
	broadcasts, err := s.broadcastStore.ListForReceiver(ctx, audience, profileID)
	if err != nil {
		return nil, fmt.Errorf("list broadcasts: %w", err)
	}
	return broadcasts, nil
}

// MarkRead records that one receiver has seen a broadcast.
func (s *BroadcastService) MarkRead(ctx context.Context, broadcastID int64, audience model.BroadcastAudience, profileID int64) error {
	if err := s.broadcastStore.MarkRead(ctx, broadcastID, audience, profileID); err != nil {
		return fmt.Errorf("mark broadcast read: %w", err)
	}
	return nil
}
