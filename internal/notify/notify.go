// Package notify carries the default delivery adapters. Both write to
// the log; real email and push transports plug in behind the same
// service interfaces.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendFacultyInvite(ctx context.Context, email, name, token string) error {
	m.logger.Info("Faculty invite issued",
		zap.String("email", email),
		zap.String("name", name),
		zap.String("token", token))
	return nil
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Deliver(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error {
	n.logger.Info("Broadcast delivered",
		zap.Int64("broadcast_id", broadcast.ID),
		zap.Int("receivers", len(receivers)))
	return nil
}
