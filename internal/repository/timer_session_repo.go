package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tempora-backend/internal/models"
)

type TimerSessionRepo struct {
	pool *pgxpool.Pool
}

func NewTimerSessionRepo(pool *pgxpool.Pool) *TimerSessionRepo {
	return &TimerSessionRepo{pool: pool}
}

const sessionColumns = `s.id, s.task_id, t.name, s.duration, s.elapsed, s.status,
	s.started_at, s.ended_at, s.last_resumed_at, s.date_created, s.date_updated`

func scanSession(row pgx.Row) (*models.TimerSession, error) {
	var s models.TimerSession
	err := row.Scan(&s.ID, &s.TaskID, &s.TaskName, &s.Duration, &s.Elapsed, &s.Status,
		&s.StartedAt, &s.EndedAt, &s.LastResumedAt, &s.DateCreated, &s.DateUpdated)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *TimerSessionRepo) Create(ctx context.Context, s *models.TimerSession) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO timer_sessions (task_id, duration, elapsed, status, started_at, ended_at, last_resumed_at, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, date_created, date_updated
	`, s.TaskID, s.Duration, s.Elapsed, s.Status, s.StartedAt, s.EndedAt, s.LastResumedAt).Scan(
		&s.ID, &s.DateCreated, &s.DateUpdated,
	)
	return translate(err)
}

func (r *TimerSessionRepo) FindByID(ctx context.Context, id int64) (*models.TimerSession, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions s JOIN tasks t ON t.id = s.task_id
		WHERE s.id = $1
	`, id)
	return scanSession(row)
}

func (r *TimerSessionRepo) FindByStatus(ctx context.Context, status models.TimerStatus) ([]models.TimerSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions s JOIN tasks t ON t.id = s.task_id
		WHERE s.status = $1
		ORDER BY s.id
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

// FindCompletedBetween returns COMPLETED sessions whose end instant falls in
// [from, to), ordered by end instant. Used by the stats aggregation.
func (r *TimerSessionRepo) FindCompletedBetween(ctx context.Context, from, to time.Time) ([]models.TimerSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions s JOIN tasks t ON t.id = s.task_id
		WHERE s.status = 'COMPLETED'
		  AND s.ended_at >= $1
		  AND s.ended_at < $2
		ORDER BY s.ended_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

// FindCompletedWithoutLog returns COMPLETED sessions that have no matching
// activity log (same task and start instant). Used by the startup backfill.
func (r *TimerSessionRepo) FindCompletedWithoutLog(ctx context.Context) ([]models.TimerSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions s JOIN tasks t ON t.id = s.task_id
		WHERE s.status = 'COMPLETED'
		  AND s.ended_at IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM activity_logs a
			WHERE a.task_id = s.task_id AND a.started_at = s.started_at
		  )
		ORDER BY s.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *TimerSessionRepo) Update(ctx context.Context, s *models.TimerSession) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE timer_sessions
		SET elapsed = $2,
			status = $3,
			ended_at = $4,
			last_resumed_at = $5,
			date_updated = NOW()
		WHERE id = $1
		RETURNING date_updated
	`, s.ID, s.Elapsed, s.Status, s.EndedAt, s.LastResumedAt).Scan(&s.DateUpdated)
	return translate(err)
}

func collectSessions(rows pgx.Rows) ([]models.TimerSession, error) {
	var sessions []models.TimerSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}
