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

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, uuid, batch_id, name, email, joined`

func scanStudent(row pgx.Row) (*model.StudentProfile, error) {
	var student model.StudentProfile
	err := row.Scan(
		&student.ID,
		&student.UUID,
		&student.BatchID,
		&student.Name,
		&student.Email,
		&student.Joined,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create enrolls a new student into a batch.
func (r *StudentRepository) Create(ctx context.Context, student *model.StudentProfile) error {
	query := `
		INSERT INTO students (uuid, batch_id, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, joined
	`

	student.UUID = uuid.New()

	err := r.pool.QueryRow(
		ctx, query,
		student.UUID,
		student.BatchID,
		student.Name,
		student.Email,
	).Scan(&student.ID, &student.Joined)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByUUID fetches a student by public identifier.
func (r *StudentRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE uuid = $1`

	student, err := scanStudent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by uuid: %w", err)
	}

	return student, nil
}

// ListByBatch returns the students enrolled in a batch.
func (r *StudentRepository) ListByBatch(ctx context.Context, batchID int64) ([]*model.StudentProfile, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE batch_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list students by batch: %w", err)
	}
	defer rows.Close()

	var students []*model.StudentProfile
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// CountByBatch returns the current enrollment of a batch.
func (r *StudentRepository) CountByBatch(ctx context.Context, batchID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM students WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students by batch: %w", err)
	}
	return count, nil
}

// Detach removes a student from their batch while keeping the profile.
func (r *StudentRepository) Detach(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `UPDATE students SET batch_id = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("student not found")
	}

	return nil
}
