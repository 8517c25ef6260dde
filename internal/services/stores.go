package services

import (
	"context"
	"time"

	"tempora-backend/internal/models"
)

// Store interfaces implemented by the pgx repositories. Services depend on
// these so the core logic tests against in-memory stores.

type TaskStore interface {
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByNameExcluding(ctx context.Context, name string, id int64) (bool, error)
	Create(ctx context.Context, t *models.Task) error
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id int64) error
}

type TimerSessionStore interface {
	Create(ctx context.Context, s *models.TimerSession) error
	FindByID(ctx context.Context, id int64) (*models.TimerSession, error)
	FindByStatus(ctx context.Context, status models.TimerStatus) ([]models.TimerSession, error)
	FindCompletedBetween(ctx context.Context, from, to time.Time) ([]models.TimerSession, error)
	FindCompletedWithoutLog(ctx context.Context) ([]models.TimerSession, error)
	Update(ctx context.Context, s *models.TimerSession) error
}

type ActivityLogStore interface {
	Create(ctx context.Context, l *models.ActivityLog) error
	FindByID(ctx context.Context, id int64) (*models.ActivityLog, error)
	FindByStartedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error)
	FindByEndedBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLog, error)
	CountOverlapping(ctx context.Context, start, end time.Time, excludeID *int64) (int64, error)
	Update(ctx context.Context, l *models.ActivityLog) error
	Delete(ctx context.Context, id int64) error
}

type ProfileStore interface {
	Get(ctx context.Context) (*models.UserProfile, error)
	Save(ctx context.Context, nickname string) (*models.UserProfile, error)
}
