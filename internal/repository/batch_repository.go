package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

type BatchRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewBatchRepository(pool *pgxpool.Pool, logger *zap.Logger) *BatchRepository {
	return &BatchRepository{
		pool:   pool,
		logger: logger,
	}
}

const batchColumns = `id, uuid, admin_id, title, active, onboard_students, max_students, created`

func scanBatch(row pgx.Row) (*model.Batch, error) {
	var batch model.Batch
	err := row.Scan(
		&batch.ID,
		&batch.UUID,
		&batch.AdminID,
		&batch.Title,
		&batch.Active,
		&batch.OnboardStudents,
		&batch.MaxStudents,
		&batch.Created,
	)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// Create inserts a new batch. The unique index on (admin_id, lower(title))
// backs the per-admin title uniqueness check against concurrent requests.
func (r *BatchRepository) Create(ctx context.Context, batch *model.Batch) error {
	query := `
		INSERT INTO batches (uuid, admin_id, title, active, onboard_students, max_students)
		VALUES ($1, $2, $3, true, $4, $5)
		RETURNING id, created
	`

	batch.UUID = uuid.New()

	err := r.pool.QueryRow(
		ctx, query,
		batch.UUID,
		batch.AdminID,
		batch.Title,
		batch.OnboardStudents,
		batch.MaxStudents,
	).Scan(&batch.ID, &batch.Created)

	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}

	batch.Active = true
	return nil
}

// GetByID fetches a batch by internal id.
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*model.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`

	batch, err := scanBatch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by id: %w", err)
	}

	return batch, nil
}

// GetByUUID fetches a batch by public identifier.
func (r *BatchRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE uuid = $1`

	batch, err := scanBatch(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by uuid: %w", err)
	}

	return batch, nil
}

// ListByAdmin returns every batch of an admin, newest first.
func (r *BatchRepository) ListByAdmin(ctx context.Context, adminID int64) ([]*model.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		WHERE admin_id = $1
		ORDER BY created DESC
	`

	rows, err := r.pool.Query(ctx, query, adminID)
	if err != nil {
		return nil, fmt.Errorf("list batches by admin: %w", err)
	}
	defer rows.Close()

	var batches []*model.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

// TitleExists checks case-insensitively whether the admin already has a
// batch with the given title, excluding one batch id when updating.
func (r *BatchRepository) TitleExists(ctx context.Context, adminID int64, title string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM batches
			WHERE admin_id = $1 AND lower(title) = lower($2) AND id <> $3
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, adminID, title, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check batch title exists: %w", err)
	}

	return exists, nil
}

// Update rewrites the mutable batch fields.
func (r *BatchRepository) Update(ctx context.Context, batch *model.Batch) error {
	query := `
		UPDATE batches
		SET title = $1, onboard_students = $2, max_students = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, batch.Title, batch.OnboardStudents, batch.MaxStudents, batch.ID)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

// SetActive toggles the soft-deactivation flag.
func (r *BatchRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.pool.Exec(ctx, `UPDATE batches SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set batch active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("batch not found")
	}

	return nil
}

// DeleteCascade removes the batch, its slots and the enrollment of its
// students in one transaction: either the whole cascade commits or none
// of it does.
func (r *BatchRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM slots WHERE batch_id = $1`, id); err != nil {
		return fmt.Errorf("delete batch slots: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE students SET batch_id = NULL WHERE batch_id = $1`, id); err != nil {
		return fmt.Errorf("detach batch students: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("batch not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.logger.Info("Batch deleted",
		zap.Int64("batch_id", id))

	return nil
}
