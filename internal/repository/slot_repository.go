package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sksingtn/trackr-backend/internal/model"
	"github.com/sksingtn/trackr-backend/internal/schedule"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

const slotColumns = `s.id, s.uuid, s.batch_id, s.faculty_id, s.title, s.weekday, s.start_minutes, s.end_minutes, s.created`

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.UUID,
		&slot.BatchID,
		&slot.FacultyID,
		&slot.Title,
		&slot.Weekday,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Created,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new slot and fills in its generated fields.
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (uuid, batch_id, faculty_id, title, weekday, start_minutes, end_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created
	`

	slot.UUID = uuid.New()

	err := r.pool.QueryRow(
		ctx, query,
		slot.UUID,
		slot.BatchID,
		slot.FacultyID,
		slot.Title,
		slot.Weekday,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.ID, &slot.Created)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByUUID fetches a slot by its public identifier.
func (r *SlotRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots s
		WHERE s.uuid = $1
	`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by uuid: %w", err)
	}

	return slot, nil
}

// Update rewrites the mutable slot fields and bumps the created stamp to
// now. The batch reference is deliberately not part of the statement.
func (r *SlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET faculty_id = $1, title = $2, weekday = $3, start_minutes = $4, end_minutes = $5, created = now()
		WHERE id = $6
		RETURNING created
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.FacultyID,
		slot.Title,
		slot.Weekday,
		slot.StartTime,
		slot.EndTime,
		slot.ID,
	).Scan(&slot.Created)

	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	return nil
}

// Delete removes a slot by internal id.
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// DeleteByBatch removes every slot of a batch.
func (r *SlotRepository) DeleteByBatch(ctx context.Context, batchID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete slots by batch: %w", err)
	}
	return nil
}

// DeleteByFaculty removes every slot taught by a faculty.
func (r *SlotRepository) DeleteByFaculty(ctx context.Context, facultyID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE faculty_id = $1`, facultyID)
	if err != nil {
		return fmt.Errorf("delete slots by faculty: %w", err)
	}
	return nil
}

const candidateQuery = `
	SELECT ` + slotColumns + `, b.title, f.name
	FROM slots s
	JOIN batches b ON b.id = s.batch_id
	JOIN faculties f ON f.id = s.faculty_id
`

func (r *SlotRepository) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]schedule.Candidate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []schedule.Candidate
	for rows.Next() {
		var slot model.Slot
		var c schedule.Candidate
		err := rows.Scan(
			&slot.ID,
			&slot.UUID,
			&slot.BatchID,
			&slot.FacultyID,
			&slot.Title,
			&slot.Weekday,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Created,
			&c.BatchTitle,
			&c.FacultyName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		c.Slot = &slot
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// CandidatesForOverlap returns the slots on a weekday belonging to the
// batch OR taught by the faculty, the union the overlap scan inspects,
// in ascending start order.
func (r *SlotRepository) CandidatesForOverlap(ctx context.Context, weekday model.Weekday, batchID, facultyID int64) ([]schedule.Candidate, error) {
	query := candidateQuery + `
		WHERE s.weekday = $1 AND (s.batch_id = $2 OR s.faculty_id = $3)
		ORDER BY s.start_minutes
	`

	candidates, err := r.queryCandidates(ctx, query, weekday, batchID, facultyID)
	if err != nil {
		return nil, fmt.Errorf("candidates for overlap: %w", err)
	}

	return candidates, nil
}

// ListByBatch returns every slot of a batch in weekly order.
func (r *SlotRepository) ListByBatch(ctx context.Context, batchID int64) ([]schedule.Candidate, error) {
	query := candidateQuery + `
		WHERE s.batch_id = $1
		ORDER BY s.weekday, s.start_minutes
	`

	candidates, err := r.queryCandidates(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list slots by batch: %w", err)
	}

	return candidates, nil
}

// ListByFaculty returns every slot taught by a faculty in weekly order,
// restricted to active batches.
func (r *SlotRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]schedule.Candidate, error) {
	query := candidateQuery + `
		WHERE s.faculty_id = $1 AND b.active
		ORDER BY s.weekday, s.start_minutes
	`

	candidates, err := r.queryCandidates(ctx, query, facultyID)
	if err != nil {
		return nil, fmt.Errorf("list slots by faculty: %w", err)
	}

	return candidates, nil
}

// CountByBatch returns the number of classes scheduled in a batch.
func (r *SlotRepository) CountByBatch(ctx context.Context, batchID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM slots WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count slots by batch: %w", err)
	}
	return count, nil
}
