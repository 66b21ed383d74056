package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type InviteTokenRepository struct {
	pool *pgxpool.Pool
}

func NewInviteTokenRepository(pool *pgxpool.Pool) *InviteTokenRepository {
	return &InviteTokenRepository{pool: pool}
}

// Create stores a freshly issued invite token.
func (r *InviteTokenRepository) Create(ctx context.Context, token *model.FacultyInviteToken) error {
	query := `
		INSERT INTO invite_tokens (faculty_id, token, expires_at, used)
		VALUES ($1, $2, $3, false)
		RETURNING id, created
	`

	err := r.pool.QueryRow(
		ctx, query,
		token.FacultyID,
		token.Token,
		token.ExpiresAt,
	).Scan(&token.ID, &token.Created)

	if err != nil {
		return fmt.Errorf("create invite token: %w", err)
	}

	return nil
}

// GetByToken fetches an invite token by its opaque value.
func (r *InviteTokenRepository) GetByToken(ctx context.Context, value string) (*model.FacultyInviteToken, error) {
	query := `
		SELECT id, faculty_id, token, expires_at, used, created
		FROM invite_tokens
		WHERE token = $1
	`

	var token model.FacultyInviteToken
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&token.ID,
		&token.FacultyID,
		&token.Token,
		&token.ExpiresAt,
		&token.Used,
		&token.Created,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite token: %w", err)
	}

	return &token, nil
}

// MarkUsed burns a token after a successful claim.
func (r *InviteTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `UPDATE invite_tokens SET used = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark invite token used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invite token not found")
	}

	return nil
}
