package models

import (
	"errors"
	"testing"
	"time"
)

func TestTimerSessionPauseResumeAccounting(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	s := &TimerSession{
		Duration:      1500,
		Status:        TimerRunning,
		StartedAt:     NewLocalTime(start),
		LastResumedAt: NewLocalTime(start),
	}

	if err := s.Pause(start.Add(5 * time.Minute)); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if s.Elapsed != 300 {
		t.Errorf("Expected elapsed 300, got %d", s.Elapsed)
	}

	// Time spent paused never counts.
	resumeAt := start.Add(45 * time.Minute)
	if err := s.Resume(resumeAt); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if s.Elapsed != 300 {
		t.Errorf("Expected elapsed unchanged at 300, got %d", s.Elapsed)
	}

	if err := s.Stop(TimerCompleted, resumeAt.Add(10*time.Minute)); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.Elapsed != 900 {
		t.Errorf("Expected elapsed 900, got %d", s.Elapsed)
	}
	if s.EndedAt == nil {
		t.Fatal("Expected EndedAt to be set")
	}
}

func TestTimerSessionInvalidTransitions(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	s := &TimerSession{Status: TimerPaused, LastResumedAt: NewLocalTime(start)}
	if err := s.Pause(start); !errors.Is(err, ErrTimerNotRunning) {
		t.Errorf("Expected ErrTimerNotRunning, got %v", err)
	}

	s = &TimerSession{Status: TimerRunning, LastResumedAt: NewLocalTime(start)}
	if err := s.Resume(start); !errors.Is(err, ErrTimerNotPaused) {
		t.Errorf("Expected ErrTimerNotPaused, got %v", err)
	}

	for _, status := range []TimerStatus{TimerCompleted, TimerCancelled} {
		s = &TimerSession{Status: status}
		if err := s.Stop(TimerCompleted, start); !errors.Is(err, ErrTimerFinished) {
			t.Errorf("Expected ErrTimerFinished for %s, got %v", status, err)
		}
	}
}

func TestTimerSessionStopWhilePaused(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	s := &TimerSession{
		Status:        TimerPaused,
		Elapsed:       600,
		LastResumedAt: NewLocalTime(start),
	}

	if err := s.Stop(TimerCancelled, start.Add(time.Hour)); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.Elapsed != 600 {
		t.Errorf("Expected elapsed to stay 600, got %d", s.Elapsed)
	}
	if s.Status != TimerCancelled {
		t.Errorf("Expected CANCELLED, got %s", s.Status)
	}
}

func TestCurrentElapsedMonotonicWhileRunning(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	s := &TimerSession{
		Status:        TimerRunning,
		Elapsed:       100,
		LastResumedAt: NewLocalTime(start),
	}

	prev := int64(-1)
	for _, offset := range []time.Duration{0, time.Second, 30 * time.Second, 10 * time.Minute} {
		got := s.CurrentElapsed(start.Add(offset))
		if got < prev {
			t.Errorf("CurrentElapsed went backwards: %d after %d", got, prev)
		}
		prev = got
	}
	if prev != 700 {
		t.Errorf("Expected final elapsed 700, got %d", prev)
	}
}

func TestTimerSessionResponseRemainingFloorsAtZero(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	s := &TimerSession{
		Duration:      60,
		Status:        TimerRunning,
		StartedAt:     NewLocalTime(start),
		LastResumedAt: NewLocalTime(start),
	}

	resp := NewTimerSessionResponse(s, start.Add(5*time.Minute))
	if resp.Elapsed != 300 {
		t.Errorf("Expected elapsed 300, got %d", resp.Elapsed)
	}
	if resp.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", resp.Remaining)
	}
}
