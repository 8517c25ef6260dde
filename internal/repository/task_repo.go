package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tempora-backend/internal/models"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, name, description, color_code, is_active, is_favorite, date_created, date_updated`

func (r *TaskRepo) FindAll(ctx context.Context) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ColorCode, &t.IsActive, &t.IsFavorite, &t.DateCreated, &t.DateUpdated); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	var t models.Task
	err := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.ColorCode, &t.IsActive, &t.IsFavorite, &t.DateCreated, &t.DateUpdated,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TaskRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

func (r *TaskRepo) ExistsByNameExcluding(ctx context.Context, name string, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE name = $1 AND id <> $2)`, name, id).Scan(&exists)
	return exists, err
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (name, description, color_code, is_active, is_favorite, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, date_created, date_updated
	`, t.Name, t.Description, t.ColorCode, t.IsActive, t.IsFavorite).Scan(&t.ID, &t.DateCreated, &t.DateUpdated)
	return translate(err)
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET name = $2,
			description = $3,
			color_code = $4,
			is_active = $5,
			is_favorite = $6,
			date_updated = NOW()
		WHERE id = $1
		RETURNING date_updated
	`, t.ID, t.Name, t.Description, t.ColorCode, t.IsActive, t.IsFavorite).Scan(&t.DateUpdated)
	return translate(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
