package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tempora-backend/internal/models"
)

func completedSession(f *fakeSessionStore, taskID int64, taskName string, ended time.Time, elapsed int64) {
	endedAt := models.NewLocalTime(ended)
	f.sessions = append(f.sessions, models.TimerSession{
		ID:        f.nextID,
		TaskID:    taskID,
		TaskName:  taskName,
		Duration:  elapsed,
		Elapsed:   elapsed,
		Status:    models.TimerCompleted,
		StartedAt: models.NewLocalTime(ended.Add(-time.Duration(elapsed) * time.Second)),
		EndedAt:   &endedAt,
	})
	f.nextID++
}

func mustDate(t *testing.T, value string) models.LocalDate {
	t.Helper()
	date, err := models.ParseLocalDate(value)
	require.NoError(t, err)
	return date
}

func TestStatsDaily(t *testing.T) {
	sessions := newFakeSessionStore()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	completedSession(sessions, 1, "writing", day.Add(10*time.Hour), 1500)
	completedSession(sessions, 2, "review", day.Add(14*time.Hour), 900)
	completedSession(sessions, 1, "writing", day.Add(16*time.Hour), 600)
	// Previous day, excluded.
	completedSession(sessions, 1, "writing", day.Add(-2*time.Hour), 3000)

	svc := NewStatsService(sessions, newFakeLogStore(), nil)
	stats, err := svc.GetDaily(context.Background(), mustDate(t, "2025-03-10"))
	require.NoError(t, err)

	require.Equal(t, int64(3000), stats.TotalSeconds)
	require.Len(t, stats.TaskStats, 2)

	// Sorted by total descending.
	require.Equal(t, int64(1), stats.TaskStats[0].TaskID)
	require.Equal(t, int64(2100), stats.TaskStats[0].TotalSeconds)
	require.Equal(t, int64(2), stats.TaskStats[0].SessionCount)
	require.Equal(t, int64(900), stats.TaskStats[1].TotalSeconds)

	require.InDelta(t, 70.0, stats.TaskStats[0].Percentage, 0.001)
	require.InDelta(t, 30.0, stats.TaskStats[1].Percentage, 0.001)

	var sum int64
	for _, item := range stats.TaskStats {
		sum += item.TotalSeconds
	}
	require.Equal(t, stats.TotalSeconds, sum)
}

func TestStatsEmptyWindow(t *testing.T) {
	svc := NewStatsService(newFakeSessionStore(), newFakeLogStore(), nil)

	stats, err := svc.GetDaily(context.Background(), mustDate(t, "2025-03-10"))
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.TotalSeconds)
	require.Empty(t, stats.TaskStats)
	require.Empty(t, stats.DailyTrend)
}

func TestStatsWeeklyWindow(t *testing.T) {
	sessions := newFakeSessionStore()
	// 2025-03-12 is a Wednesday; the containing week is Mar 10 through Mar 16.
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local), 600)
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 16, 23, 0, 0, 0, time.Local), 300)
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 9, 23, 0, 0, 0, time.Local), 900)
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 17, 0, 30, 0, 0, time.Local), 900)

	svc := NewStatsService(sessions, newFakeLogStore(), nil)
	stats, err := svc.GetWeekly(context.Background(), mustDate(t, "2025-03-12"))
	require.NoError(t, err)

	require.Equal(t, "2025-03-10", stats.From.String())
	require.Equal(t, "2025-03-16", stats.To.String())
	require.Equal(t, int64(900), stats.TotalSeconds)
	require.Len(t, stats.DailyTrend, 2)
	require.Equal(t, "2025-03-10", stats.DailyTrend[0].Date.String())
	require.Equal(t, "2025-03-16", stats.DailyTrend[1].Date.String())
}

func TestStatsMonthly(t *testing.T) {
	sessions := newFakeSessionStore()
	completedSession(sessions, 1, "writing", time.Date(2025, 2, 28, 12, 0, 0, 0, time.Local), 100)
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 1, 0, 30, 0, 0, time.Local), 200)
	completedSession(sessions, 1, "writing", time.Date(2025, 3, 31, 23, 30, 0, 0, time.Local), 300)
	completedSession(sessions, 1, "writing", time.Date(2025, 4, 1, 0, 30, 0, 0, time.Local), 400)

	svc := NewStatsService(sessions, newFakeLogStore(), nil)
	stats, err := svc.GetMonthly(context.Background(), mustDate(t, "2025-03-15"))
	require.NoError(t, err)

	require.Equal(t, "2025-03-01", stats.From.String())
	require.Equal(t, "2025-03-31", stats.To.String())
	require.Equal(t, int64(500), stats.TotalSeconds)
}

func TestStatsCustomRejectsInvertedRange(t *testing.T) {
	svc := NewStatsService(newFakeSessionStore(), newFakeLogStore(), nil)

	_, err := svc.GetCustom(context.Background(), mustDate(t, "2025-03-15"), mustDate(t, "2025-03-10"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestStatsTieBreaksByTaskID(t *testing.T) {
	sessions := newFakeSessionStore()
	when := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	completedSession(sessions, 2, "review", when, 600)
	completedSession(sessions, 1, "writing", when.Add(time.Hour), 600)

	svc := NewStatsService(sessions, newFakeLogStore(), nil)
	stats, err := svc.GetDaily(context.Background(), mustDate(t, "2025-03-10"))
	require.NoError(t, err)

	require.Equal(t, int64(1), stats.TaskStats[0].TaskID)
	require.Equal(t, int64(2), stats.TaskStats[1].TaskID)
}

func manualLog(f *fakeLogStore, taskID int64, source models.ActivitySource, ended time.Time, duration int64) {
	f.logs = append(f.logs, models.ActivityLog{
		ID:              f.nextID,
		TaskID:          taskID,
		StartedAt:       models.NewLocalTime(ended.Add(-time.Duration(duration) * time.Second)),
		EndedAt:         models.NewLocalTime(ended),
		DurationSeconds: duration,
		Source:          source,
	})
	f.nextID++
}

func TestStatsBySource(t *testing.T) {
	logs := newFakeLogStore()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	manualLog(logs, 1, models.SourceTimer, day.Add(10*time.Hour), 1500)
	manualLog(logs, 1, models.SourceTimer, day.Add(12*time.Hour), 1500)
	manualLog(logs, 2, models.SourceManual, day.Add(15*time.Hour), 1000)

	svc := NewStatsService(newFakeSessionStore(), logs, nil)
	stats, err := svc.GetBySource(context.Background(), mustDate(t, "2025-03-10"), mustDate(t, "2025-03-10"))
	require.NoError(t, err)

	require.Equal(t, int64(4000), stats.TotalSeconds)
	require.Len(t, stats.Sources, 2)
	require.Equal(t, models.SourceTimer, stats.Sources[0].Source)
	require.Equal(t, int64(3000), stats.Sources[0].TotalSeconds)
	require.Equal(t, int64(2), stats.Sources[0].LogCount)
	require.Equal(t, models.SourceManual, stats.Sources[1].Source)
	require.InDelta(t, 75.0, stats.Sources[0].Percentage, 0.001)
	require.InDelta(t, 25.0, stats.Sources[1].Percentage, 0.001)
}

func TestStatsBySourceSingleSource(t *testing.T) {
	logs := newFakeLogStore()
	manualLog(logs, 1, models.SourceManual, time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local), 600)

	svc := NewStatsService(newFakeSessionStore(), logs, nil)
	stats, err := svc.GetBySource(context.Background(), mustDate(t, "2025-03-10"), mustDate(t, "2025-03-10"))
	require.NoError(t, err)

	require.Len(t, stats.Sources, 1)
	require.Equal(t, models.SourceManual, stats.Sources[0].Source)
	require.InDelta(t, 100.0, stats.Sources[0].Percentage, 0.001)
}
