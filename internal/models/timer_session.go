package models

import (
	"errors"
	"time"
)

type TimerStatus string

const (
	TimerRunning   TimerStatus = "RUNNING"
	TimerPaused    TimerStatus = "PAUSED"
	TimerCompleted TimerStatus = "COMPLETED"
	TimerCancelled TimerStatus = "CANCELLED"
)

// Terminal reports whether the status permits no further transitions.
func (s TimerStatus) Terminal() bool {
	return s == TimerCompleted || s == TimerCancelled
}

var (
	ErrTimerNotRunning = errors.New("only a running timer can be paused")
	ErrTimerNotPaused  = errors.New("only a paused timer can be resumed")
	ErrTimerFinished   = errors.New("the timer session has already ended")
)

// TimerSession is one run of the countdown mechanism against a task.
//
// Elapsed is a baseline accumulated over closed running intervals only; the
// currently-open interval is recovered from LastResumedAt on demand, so no
// server-side ticker is needed.
type TimerSession struct {
	ID            int64       `json:"id"`
	TaskID        int64       `json:"taskId"`
	TaskName      string      `json:"taskName"`
	Duration      int64       `json:"duration"`
	Elapsed       int64       `json:"elapsed"`
	Status        TimerStatus `json:"status"`
	StartedAt     LocalTime   `json:"startedAt"`
	EndedAt       *LocalTime  `json:"endedAt"`
	LastResumedAt LocalTime   `json:"lastResumedAt"`
	DateCreated   LocalTime   `json:"dateCreated"`
	DateUpdated   LocalTime   `json:"dateUpdated"`
}

// Pause folds the open running interval into the elapsed baseline.
func (s *TimerSession) Pause(now time.Time) error {
	if s.Status != TimerRunning {
		return ErrTimerNotRunning
	}
	s.Elapsed += SecondsBetween(s.LastResumedAt.Time, now)
	s.Status = TimerPaused
	return nil
}

// Resume reopens a running interval. The elapsed baseline is untouched.
func (s *TimerSession) Resume(now time.Time) error {
	if s.Status != TimerPaused {
		return ErrTimerNotPaused
	}
	s.LastResumedAt = NewLocalTime(now)
	s.Status = TimerRunning
	return nil
}

// Stop moves the session to a terminal status, folding in the open interval
// first when the session is still running.
func (s *TimerSession) Stop(status TimerStatus, now time.Time) error {
	if s.Status.Terminal() {
		return ErrTimerFinished
	}
	if s.Status == TimerRunning {
		s.Elapsed += SecondsBetween(s.LastResumedAt.Time, now)
	}
	s.Status = status
	ended := NewLocalTime(now)
	s.EndedAt = &ended
	return nil
}

// CurrentElapsed derives the total elapsed seconds at the query instant.
func (s *TimerSession) CurrentElapsed(now time.Time) int64 {
	if s.Status == TimerRunning {
		return s.Elapsed + SecondsBetween(s.LastResumedAt.Time, now)
	}
	return s.Elapsed
}

type TimerStartRequest struct {
	TaskID   int64 `json:"taskId"`
	Duration int64 `json:"duration"`
}

type TimerSessionResponse struct {
	ID        int64       `json:"id"`
	TaskID    int64       `json:"taskId"`
	TaskName  string      `json:"taskName"`
	Duration  int64       `json:"duration"`
	Elapsed   int64       `json:"elapsed"`
	Remaining int64       `json:"remaining"`
	Status    TimerStatus `json:"status"`
	StartedAt LocalTime   `json:"startedAt"`
	EndedAt   *LocalTime  `json:"endedAt"`
}

// NewTimerSessionResponse snapshots a session at the given instant.
func NewTimerSessionResponse(s *TimerSession, now time.Time) *TimerSessionResponse {
	elapsed := s.CurrentElapsed(now)
	remaining := s.Duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return &TimerSessionResponse{
		ID:        s.ID,
		TaskID:    s.TaskID,
		TaskName:  s.TaskName,
		Duration:  s.Duration,
		Elapsed:   elapsed,
		Remaining: remaining,
		Status:    s.Status,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
	}
}
