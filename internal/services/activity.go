package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

// ActivityLogService manages the log of completed time intervals, whether they
// came from a finished timer or from manual entry.
type ActivityLogService struct {
	logs  ActivityLogStore
	tasks TaskStore
	cache *cache.Cache
	now   func() time.Time
}

func NewActivityLogService(logs ActivityLogStore, tasks TaskStore, c *cache.Cache) *ActivityLogService {
	return &ActivityLogService{logs: logs, tasks: tasks, cache: c, now: time.Now}
}

func (s *ActivityLogService) FindByDate(ctx context.Context, date models.LocalDate) ([]models.ActivityLogResponse, error) {
	return s.findBetween(ctx, date.StartOfDay(), date.NextDay())
}

func (s *ActivityLogService) FindByRange(ctx context.Context, from, to models.LocalDate) ([]models.ActivityLogResponse, error) {
	return s.findBetween(ctx, from.StartOfDay(), to.NextDay())
}

func (s *ActivityLogService) findBetween(ctx context.Context, from, to time.Time) ([]models.ActivityLogResponse, error) {
	logs, err := s.logs.FindByStartedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]models.ActivityLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, models.ActivityLogResponse{ActivityLog: l})
	}
	return responses, nil
}

func (s *ActivityLogService) FindByID(ctx context.Context, id int64) (*models.ActivityLogResponse, error) {
	log, err := s.getLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ActivityLogResponse{ActivityLog: *log}, nil
}

// Create records a manual entry. Overlap with existing records is allowed; the
// response only carries an advisory warning.
func (s *ActivityLogService) Create(ctx context.Context, req models.ActivityLogCreateRequest) (*models.ActivityLogResponse, error) {
	if err := s.validateTimeRange(req.StartedAt, req.EndedAt); err != nil {
		return nil, err
	}
	task, err := findTask(ctx, s.tasks, req.TaskID)
	if err != nil {
		return nil, err
	}

	log := &models.ActivityLog{
		TaskID:          task.ID,
		TaskName:        task.Name,
		ColorCode:       task.ColorCode,
		StartedAt:       req.StartedAt,
		EndedAt:         req.EndedAt,
		DurationSeconds: models.SecondsBetween(req.StartedAt.Time, req.EndedAt.Time),
		Source:          models.SourceManual,
		Memo:            req.Memo,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &models.ActivityLogResponse{
		ActivityLog: *log,
		Warning:     s.overlapWarning(ctx, log.StartedAt, log.EndedAt, log.ID),
	}, nil
}

// CreateFromTimer records a TIMER-sourced log for a completed session. Called
// by the timer engine and the startup backfill; skips manual-entry validation.
func (s *ActivityLogService) CreateFromTimer(ctx context.Context, taskID int64, startedAt, endedAt models.LocalTime, durationSeconds int64) error {
	log := &models.ActivityLog{
		TaskID:          taskID,
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: durationSeconds,
		Source:          models.SourceTimer,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *ActivityLogService) Update(ctx context.Context, id int64, req models.ActivityLogUpdateRequest) (*models.ActivityLogResponse, error) {
	log, err := s.getLog(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TaskID != nil {
		task, err := findTask(ctx, s.tasks, *req.TaskID)
		if err != nil {
			return nil, err
		}
		log.TaskID = task.ID
		log.TaskName = task.Name
		log.ColorCode = task.ColorCode
	}

	newStarted := log.StartedAt
	newEnded := log.EndedAt
	if req.StartedAt != nil {
		newStarted = *req.StartedAt
	}
	if req.EndedAt != nil {
		newEnded = *req.EndedAt
	}
	if err := s.validateTimeRange(newStarted, newEnded); err != nil {
		return nil, err
	}
	if req.StartedAt != nil || req.EndedAt != nil {
		log.StartedAt = newStarted
		log.EndedAt = newEnded
		log.DurationSeconds = models.SecondsBetween(newStarted.Time, newEnded.Time)
	}
	if req.Memo != nil {
		log.Memo = req.Memo
	}

	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &models.ActivityLogResponse{
		ActivityLog: *log,
		Warning:     s.overlapWarning(ctx, log.StartedAt, log.EndedAt, log.ID),
	}, nil
}

func (s *ActivityLogService) Delete(ctx context.Context, id int64) error {
	err := s.logs.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: fmt.Sprintf("activity log not found: id=%d", id)}
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *ActivityLogService) validateTimeRange(startedAt, endedAt models.LocalTime) error {
	if !endedAt.After(startedAt.Time) {
		return &ValidationError{Message: "end time must be after start time"}
	}
	if endedAt.After(s.now()) {
		return &ValidationError{Message: "end time cannot be in the future"}
	}
	return nil
}

// overlapWarning returns the advisory message when [start, end) intersects any
// other record, nil otherwise. Lookup failures degrade to no warning.
func (s *ActivityLogService) overlapWarning(ctx context.Context, start, end models.LocalTime, excludeID int64) *string {
	count, err := s.logs.CountOverlapping(ctx, start.Time, end.Time, &excludeID)
	if err != nil || count == 0 {
		return nil
	}
	msg := fmt.Sprintf("time range overlaps %d existing record(s)", count)
	return &msg
}

func (s *ActivityLogService) getLog(ctx context.Context, id int64) (*models.ActivityLog, error) {
	log, err := s.logs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("activity log not found: id=%d", id)}
	}
	return log, err
}
