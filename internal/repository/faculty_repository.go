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

type FacultyRepository struct {
	pool *pgxpool.Pool
}

func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{pool: pool}
}

const facultyColumns = `id, uuid, admin_id, name, email, password_set, joined, created`

func scanFaculty(row pgx.Row) (*model.FacultyProfile, error) {
	var faculty model.FacultyProfile
	err := row.Scan(
		&faculty.ID,
		&faculty.UUID,
		&faculty.AdminID,
		&faculty.Name,
		&faculty.Email,
		&faculty.PasswordSet,
		&faculty.Joined,
		&faculty.Created,
	)
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

// Create inserts a new faculty profile. Email is nil for faculties added
// without an invite.
func (r *FacultyRepository) Create(ctx context.Context, faculty *model.FacultyProfile) error {
	query := `
		INSERT INTO faculties (uuid, admin_id, name, email, password_set)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, created
	`

	faculty.UUID = uuid.New()

	err := r.pool.QueryRow(
		ctx, query,
		faculty.UUID,
		faculty.AdminID,
		faculty.Name,
		faculty.Email,
	).Scan(&faculty.ID, &faculty.Created)

	if err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}

	return nil
}

// GetByID fetches a faculty by internal id.
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*model.FacultyProfile, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculties WHERE id = $1`

	faculty, err := scanFaculty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faculty by id: %w", err)
	}

	return faculty, nil
}

// GetByUUID fetches a faculty by public identifier.
func (r *FacultyRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.FacultyProfile, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculties WHERE uuid = $1`

	faculty, err := scanFaculty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faculty by uuid: %w", err)
	}

	return faculty, nil
}

// ListByAdmin returns the faculties invited or added by an admin.
func (r *FacultyRepository) ListByAdmin(ctx context.Context, adminID int64) ([]*model.FacultyProfile, error) {
	query := `
		SELECT ` + facultyColumns + `
		FROM faculties
		WHERE admin_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, adminID)
	if err != nil {
		return nil, fmt.Errorf("list faculties by admin: %w", err)
	}
	defer rows.Close()

	var faculties []*model.FacultyProfile
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	return faculties, rows.Err()
}

// ListAssignedToBatch returns the distinct faculties teaching at least one
// slot of the batch.
func (r *FacultyRepository) ListAssignedToBatch(ctx context.Context, batchID int64) ([]*model.FacultyProfile, error) {
	query := `
		SELECT DISTINCT ` + facultyColumns + `
		FROM faculties
		JOIN slots ON slots.faculty_id = faculties.id
		WHERE slots.batch_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list faculties by batch: %w", err)
	}
	defer rows.Close()

	var faculties []*model.FacultyProfile
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	return faculties, rows.Err()
}

// NameExists checks case-insensitively whether the admin already has a
// faculty with the given name.
func (r *FacultyRepository) NameExists(ctx context.Context, adminID int64, name string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM faculties
			WHERE admin_id = $1 AND lower(name) = lower($2)
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, adminID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check faculty name exists: %w", err)
	}

	return exists, nil
}

// ClaimAccount marks the invited faculty's account as usable and stamps
// the join date.
func (r *FacultyRepository) ClaimAccount(ctx context.Context, id int64) error {
	query := `
		UPDATE faculties
		SET password_set = true, joined = now()
		WHERE id = $1 AND email IS NOT NULL
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("claim faculty account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("faculty not invited")
	}

	return nil
}

// Detach unlinks the faculty from its admin while keeping the profile.
// The teaching history disappears with the slots, which the caller removes
// in the same operation.
func (r *FacultyRepository) Detach(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `UPDATE faculties SET admin_id = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach faculty: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("faculty not found")
	}

	return nil
}

// Delete removes an unverified faculty outright.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM faculties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("faculty not found")
	}

	return nil
}
