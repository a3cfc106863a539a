package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// TimeIntervalRepositoryImpl implements the TimeIntervalRepository interface
type TimeIntervalRepositoryImpl struct {
	db *sqlx.DB
}

// NewTimeIntervalRepository creates a new time interval repository
func NewTimeIntervalRepository(db *sqlx.DB) ports.TimeIntervalRepository {
	return &TimeIntervalRepositoryImpl{db: db}
}

func (r *TimeIntervalRepositoryImpl) Create(ctx context.Context, interval *entities.TimeInterval) error {
	query := `
		INSERT INTO time_intervals (id, task_id, start_date, end_date, time_zone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if interval.ID == uuid.Nil {
		interval.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		interval.ID, interval.TaskID, interval.StartDate, interval.EndDate, interval.TimeZone,
	).Scan(&interval.CreatedAt, &interval.UpdatedAt)

	if err != nil {
		// The partial unique index on open intervals is the concurrency
		// backstop: a second open interval for the same task violates it.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "time_intervals_open_task_idx" {
			return entities.ErrAlreadyTracking
		}
		return fmt.Errorf("create time interval: %w", err)
	}

	return nil
}

func (r *TimeIntervalRepositoryImpl) GetOpenByTask(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error) {
	query := `
		SELECT id, task_id, start_date, end_date, time_zone, created_at, updated_at
		FROM time_intervals
		WHERE task_id = $1 AND end_date IS NULL`

	var interval entities.TimeInterval
	err := r.db.GetContext(ctx, &interval, query, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoActiveTracking
		}
		return nil, fmt.Errorf("get open interval: %w", err)
	}

	return &interval, nil
}

func (r *TimeIntervalRepositoryImpl) CloseOpen(ctx context.Context, taskID uuid.UUID, endedAt time.Time) (*entities.TimeInterval, error) {
	// Single conditional update so concurrent stops race on the row, not
	// on an application-level read-modify-write.
	query := `
		UPDATE time_intervals
		SET end_date = $2, updated_at = CURRENT_TIMESTAMP
		WHERE task_id = $1 AND end_date IS NULL
		RETURNING id, task_id, start_date, end_date, time_zone, created_at, updated_at`

	var interval entities.TimeInterval
	err := r.db.GetContext(ctx, &interval, query, taskID, endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNoActiveTracking
		}
		return nil, fmt.Errorf("close open interval: %w", err)
	}

	return &interval, nil
}

func (r *TimeIntervalRepositoryImpl) ListClosedByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error) {
	query := `
		SELECT id, task_id, start_date, end_date, time_zone, created_at, updated_at
		FROM time_intervals
		WHERE task_id = $1 AND end_date IS NOT NULL
		ORDER BY start_date DESC`

	intervals := []*entities.TimeInterval{}
	err := r.db.SelectContext(ctx, &intervals, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list closed intervals by task: %w", err)
	}

	return intervals, nil
}

func (r *TimeIntervalRepositoryImpl) ListClosedSince(ctx context.Context, since time.Time) ([]*entities.TimeInterval, error) {
	query := `
		SELECT id, task_id, start_date, end_date, time_zone, created_at, updated_at
		FROM time_intervals
		WHERE end_date IS NOT NULL AND start_date >= $1
		ORDER BY start_date DESC`

	intervals := []*entities.TimeInterval{}
	err := r.db.SelectContext(ctx, &intervals, query, since)
	if err != nil {
		return nil, fmt.Errorf("list closed intervals since: %w", err)
	}

	return intervals, nil
}

func (r *TimeIntervalRepositoryImpl) DeleteByTask(ctx context.Context, taskID uuid.UUID) error {
	query := `DELETE FROM time_intervals WHERE task_id = $1`

	if _, err := r.db.ExecContext(ctx, query, taskID); err != nil {
		return fmt.Errorf("delete intervals by task: %w", err)
	}

	return nil
}
