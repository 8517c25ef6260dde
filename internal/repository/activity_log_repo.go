package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tempora-backend/internal/models"
)

type ActivityLogRepo struct {
	pool *pgxpool.Pool
}

func NewActivityLogRepo(pool *pgxpool.Pool) *ActivityLogRepo {
	return &ActivityLogRepo{pool: pool}
}

const logColumns = `a.id, a.task_id, t.name, t.color_code, a.started_at, a.ended_at,
	a.duration_seconds, a.source, a.memo, a.date_created, a.date_updated`

func scanLog(row pgx.Row) (*models.ActivityLog, error) {
	var l models.ActivityLog
	err := row.Scan(&l.ID, &l.TaskID, &l.TaskName, &l.ColorCode, &l.StartedAt, &l.EndedAt,
		&l.DurationSeconds, &l.Source, &l.Memo, &l.DateCreated, &l.DateUpdated)
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *models.ActivityLog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activity_logs (task_id, started_at, ended_at, duration_seconds, source, memo, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, date_created, date_updated
	`, l.TaskID, l.StartedAt, l.EndedAt, l.DurationSeconds, l.Source, l.Memo).Scan(
		&l.ID, &l.DateCreated, &l.DateUpdated,
	)
	return translate(err)
}

func (r *ActivityLogRepo) FindByID(ctx context.Context, id int64) (*models.ActivityLog, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+logColumns+`
		FROM activity_logs a JOIN tasks t ON t.id = a.task_id
		WHERE a.id = $1
	`, id)
	return scanLog(row)
}

// FindByStartedBetween returns logs whose start instant falls in [from, to),
// ordered by start instant. Used by the day/range queries and the time tree.
func (r *ActivityLogRepo) FindByStartedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error) {
	return r.findBetween(ctx, "started_at", from, to)
}

// FindByEndedBetween returns logs whose end instant falls in [from, to),
// ordered by end instant. Used by the by-source stats.
func (r *ActivityLogRepo) FindByEndedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error) {
	return r.findBetween(ctx, "ended_at", from, to)
}

func (r *ActivityLogRepo) findBetween(ctx context.Context, column string, from, to time.Time) ([]models.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+logColumns+`
		FROM activity_logs a JOIN tasks t ON t.id = a.task_id
		WHERE a.`+column+` >= $1 AND a.`+column+` < $2
		ORDER BY a.`+column,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// CountOverlapping counts logs whose [started_at, ended_at) interval intersects
// [start, end), excluding the record being updated when excludeID is non-nil.
func (r *ActivityLogRepo) CountOverlapping(ctx context.Context, start, end time.Time, excludeID *int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM activity_logs
		WHERE started_at < $2
		  AND ended_at > $1
		  AND ($3::BIGINT IS NULL OR id <> $3)
	`, start, end, excludeID).Scan(&count)
	return count, err
}

func (r *ActivityLogRepo) Update(ctx context.Context, l *models.ActivityLog) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE activity_logs
		SET task_id = $2,
			started_at = $3,
			ended_at = $4,
			duration_seconds = $5,
			memo = $6,
			date_updated = NOW()
		WHERE id = $1
		RETURNING date_updated
	`, l.ID, l.TaskID, l.StartedAt, l.EndedAt, l.DurationSeconds, l.Memo).Scan(&l.DateUpdated)
	return translate(err)
}

func (r *ActivityLogRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_logs WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
