package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, uuid, name, email, timezone, active, created`

func scanAdmin(row pgx.Row) (*model.AdminProfile, error) {
	var admin model.AdminProfile
	err := row.Scan(
		&admin.ID,
		&admin.UUID,
		&admin.Name,
		&admin.Email,
		&admin.Timezone,
		&admin.Active,
		&admin.Created,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts a new admin profile.
func (r *AdminRepository) Create(ctx context.Context, admin *model.AdminProfile) error {
	query := `
		INSERT INTO admins (uuid, name, email, timezone, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created
	`

	admin.UUID = uuid.New()

	err := r.pool.QueryRow(
		ctx, query,
		admin.UUID,
		admin.Name,
		admin.Email,
		admin.Timezone,
	).Scan(&admin.ID, &admin.Created)

	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	admin.Active = true
	return nil
}

// GetByID fetches an admin by internal id.
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*model.AdminProfile, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

// GetByUUID fetches an admin by public identifier.
func (r *AdminRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.AdminProfile, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE uuid = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by uuid: %w", err)
	}

	return admin, nil
}
