package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

// TimerService runs the countdown session state machine.
//
// The whole system allows at most one RUNNING session. Mutating operations
// serialize behind a mutex so two concurrent starts cannot both observe zero
// running sessions; the partial unique index on timer_sessions backstops the
// invariant at the schema level.
type TimerService struct {
	mu       sync.Mutex
	sessions TimerSessionStore
	tasks    TaskStore
	activity *ActivityLogService
	events   EventPublisher
	cache    *cache.Cache
	now      func() time.Time
}

func NewTimerService(
	sessions TimerSessionStore,
	tasks TaskStore,
	activity *ActivityLogService,
	events EventPublisher,
	c *cache.Cache,
) *TimerService {
	return &TimerService{
		sessions: sessions,
		tasks:    tasks,
		activity: activity,
		events:   events,
		cache:    c,
		now:      time.Now,
	}
}

// GetActiveSession returns the RUNNING session if one exists, otherwise the
// PAUSED one, otherwise nil.
func (s *TimerService) GetActiveSession(ctx context.Context) (*models.TimerSessionResponse, error) {
	now := s.now()
	for _, status := range []models.TimerStatus{models.TimerRunning, models.TimerPaused} {
		sessions, err := s.sessions.FindByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		if len(sessions) > 0 {
			return models.NewTimerSessionResponse(&sessions[0], now), nil
		}
	}
	return nil, nil
}

// Start creates a RUNNING session for the task, auto-pausing any session that
// is currently running.
func (s *TimerService) Start(ctx context.Context, req models.TimerStartRequest) (*models.TimerSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := findTask(ctx, s.tasks, req.TaskID)
	if err != nil {
		return nil, err
	}
	if req.Duration <= 0 {
		return nil, &ValidationError{Message: "timer duration must be greater than zero"}
	}

	now := s.now()
	if err := s.pauseRunning(ctx, now, 0); err != nil {
		return nil, err
	}

	session := &models.TimerSession{
		TaskID:        task.ID,
		TaskName:      task.Name,
		Duration:      req.Duration,
		Status:        models.TimerRunning,
		StartedAt:     models.NewLocalTime(now),
		LastResumedAt: models.NewLocalTime(now),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	resp := models.NewTimerSessionResponse(session, now)
	s.publish(ctx, "timer.started", resp)
	return resp, nil
}

func (s *TimerService) Pause(ctx context.Context, sessionID int64) (*models.TimerSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := session.Pause(now); err != nil {
		return nil, &ConflictError{Message: err.Error()}
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	resp := models.NewTimerSessionResponse(session, now)
	s.publish(ctx, "timer.paused", resp)
	return resp, nil
}

// Resume reopens a paused session. Any other RUNNING session is auto-paused
// first, defending the single-RUNNING invariant.
func (s *TimerService) Resume(ctx context.Context, sessionID int64) (*models.TimerSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.pauseRunning(ctx, now, sessionID); err != nil {
		return nil, err
	}
	if err := session.Resume(now); err != nil {
		return nil, &ConflictError{Message: err.Error()}
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	resp := models.NewTimerSessionResponse(session, now)
	s.publish(ctx, "timer.resumed", resp)
	return resp, nil
}

// Stop ends a session as COMPLETED or CANCELLED. Completion records a
// TIMER-sourced activity log carrying the session's final elapsed seconds.
// The stop itself is persisted first: if the log write fails the session
// stays stopped and the startup backfill repairs the missing log later.
func (s *TimerService) Stop(ctx context.Context, sessionID int64, completed bool) (*models.TimerSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := models.TimerCancelled
	if completed {
		status = models.TimerCompleted
	}
	if err := session.Stop(status, now); err != nil {
		return nil, &ConflictError{Message: err.Error()}
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	if completed {
		if err := s.activity.CreateFromTimer(ctx, session.TaskID, session.StartedAt, *session.EndedAt, session.Elapsed); err != nil {
			return nil, fmt.Errorf("recording completed session %d: %w", session.ID, err)
		}
	}

	s.cache.Invalidate(ctx)
	resp := models.NewTimerSessionResponse(session, now)
	s.publish(ctx, "timer.stopped", resp)
	return resp, nil
}

// pauseRunning folds the open interval of every RUNNING session except
// excludeID into its elapsed baseline.
func (s *TimerService) pauseRunning(ctx context.Context, now time.Time, excludeID int64) error {
	running, err := s.sessions.FindByStatus(ctx, models.TimerRunning)
	if err != nil {
		return err
	}
	for i := range running {
		session := &running[i]
		if session.ID == excludeID {
			continue
		}
		if err := session.Pause(now); err != nil {
			continue
		}
		if err := s.sessions.Update(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

func (s *TimerService) getSession(ctx context.Context, id int64) (*models.TimerSession, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Message: fmt.Sprintf("timer session not found: id=%d", id)}
	}
	return session, err
}

func (s *TimerService) publish(ctx context.Context, eventType string, session *models.TimerSessionResponse) {
	if s.events == nil {
		return
	}
	s.events.PublishTimerEvent(ctx, TimerEvent{Type: eventType, Session: session})
}
