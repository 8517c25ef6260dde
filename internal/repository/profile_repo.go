package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"tempora-backend/internal/models"
)

// ProfileRepo stores the singleton user profile under a pinned key, so "save"
// is a plain upsert rather than a scan for whichever row happens to be first.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileKey = 1

func (r *ProfileRepo) Get(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, nickname, date_created, date_updated
		FROM user_profiles
		WHERE id = $1
	`, profileKey).Scan(&p.ID, &p.Nickname, &p.DateCreated, &p.DateUpdated)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProfileRepo) Save(ctx context.Context, nickname string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (id, nickname, date_created, date_updated)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET nickname = EXCLUDED.nickname,
			date_updated = NOW()
		RETURNING id, nickname, date_created, date_updated
	`, profileKey, nickname).Scan(&p.ID, &p.Nickname, &p.DateCreated, &p.DateUpdated)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
