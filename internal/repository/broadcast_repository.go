package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type BroadcastRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewBroadcastRepository(pool *pgxpool.Pool, logger *zap.Logger) *BroadcastRepository {
	return &BroadcastRepository{
		pool:   pool,
		logger: logger,
	}
}

// Create stores the broadcast and its receiver rows atomically.
func (r *BroadcastRepository) Create(ctx context.Context, broadcast *model.Broadcast, receivers []model.BroadcastReceiver) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(
		ctx,
		`INSERT INTO broadcasts (sender_admin_id, text) VALUES ($1, $2) RETURNING id, created`,
		broadcast.SenderAdminID,
		broadcast.Text,
	).Scan(&broadcast.ID, &broadcast.Created)
	if err != nil {
		return fmt.Errorf("create broadcast: %w", err)
	}

	for i := range receivers {
		receivers[i].BroadcastID = broadcast.ID
		_, err := tx.Exec(
			ctx,
			`INSERT INTO broadcast_receivers (broadcast_id, audience, profile_id) VALUES ($1, $2, $3)`,
			broadcast.ID,
			receivers[i].Audience,
			receivers[i].ProfileID,
		)
		if err != nil {
			return fmt.Errorf("create broadcast receiver: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Info("Broadcast stored",
		zap.Int64("broadcast_id", broadcast.ID),
		zap.Int("receivers", len(receivers)))

	return nil
}

// ListForReceiver returns the broadcasts addressed to one profile,
// newest first.
func (r *BroadcastRepository) ListForReceiver(ctx context.Context, audience model.BroadcastAudience, profileID int64) ([]*model.Broadcast, error) {
	query := `
		SELECT b.id, b.sender_admin_id, b.text, b.created
		FROM broadcasts b
		JOIN broadcast_receivers br ON br.broadcast_id = b.id
		WHERE br.audience = $1 AND br.profile_id = $2
		ORDER BY b.created DESC
	`

	rows, err := r.pool.Query(ctx, query, audience, profileID)
	if err != nil {
		return nil, fmt.Errorf("list broadcasts for receiver: %w", err)
	}
	defer rows.Close()

	var broadcasts []*model.Broadcast
	for rows.Next() {
		var b model.Broadcast
		if err := rows.Scan(&b.ID, &b.SenderAdminID, &b.Text, &b.Created); err != nil {
			return nil, fmt.Errorf("scan broadcast: %w", err)
		}
		broadcasts = append(broadcasts, &b)
	}

	return broadcasts, rows.Err()
}

// MarkRead flags a broadcast as read for one receiver.
func (r *BroadcastRepository) MarkRead(ctx context.Context, broadcastID int64, audience model.BroadcastAudience, profileID int64) error {
	result, err := r.pool.Exec(
		ctx,
		`UPDATE broadcast_receivers SET read = true WHERE broadcast_id = $1 AND audience = $2 AND profile_id = $3`,
		broadcastID, audience, profileID,
	)
	if err != nil {
		return fmt.Errorf("mark broadcast read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("broadcast receiver not found")
	}

	return nil
}
