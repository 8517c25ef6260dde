package services

import (
	"context"
	"fmt"

	"tempora-backend/internal/models"
)

// BackfillTimerLogs converts COMPLETED timer sessions that never produced an
// activity log into TIMER-sourced logs. A session matches a log on task and
// start instant, so reruns are no-ops. This repairs the stop→log handoff when
// the log write failed after the stop committed.
func BackfillTimerLogs(ctx context.Context, sessions TimerSessionStore, logs ActivityLogStore) (int, error) {
	orphaned, err := sessions.FindCompletedWithoutLog(ctx)
	if err != nil {
		return 0, fmt.Errorf("finding unlogged sessions: %w", err)
	}

	migrated := 0
	for i := range orphaned {
		session := &orphaned[i]
		if session.EndedAt == nil {
			continue
		}
		log := &models.ActivityLog{
			TaskID:          session.TaskID,
			StartedAt:       session.StartedAt,
			EndedAt:         *session.EndedAt,
			DurationSeconds: session.Elapsed,
			Source:          models.SourceTimer,
		}
		if err := logs.Create(ctx, log); err != nil {
			return migrated, fmt.Errorf("backfilling session %d: %w", session.ID, err)
		}
		migrated++
	}
	return migrated, nil
}
