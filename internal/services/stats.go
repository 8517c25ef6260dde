package services

import (
	"context"
	"fmt"
	"sort"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/models"
)

// StatsService aggregates completed work into period-bucketed statistics.
// The main stats scan COMPLETED timer sessions; the by-source breakdown scans
// activity logs. Both filter on the end instant with an exclusive upper bound
// one day past the range so the `to` date stays inclusive.
type StatsService struct {
	sessions TimerSessionStore
	logs     ActivityLogStore
	cache    *cache.Cache
}

func NewStatsService(sessions TimerSessionStore, logs ActivityLogStore, c *cache.Cache) *StatsService {
	return &StatsService{sessions: sessions, logs: logs, cache: c}
}

func (s *StatsService) GetDaily(ctx context.Context, date models.LocalDate) (*models.StatsResponse, error) {
	return s.buildStats(ctx, date, date)
}

// GetWeekly covers the Monday-to-Sunday week containing date.
func (s *StatsService) GetWeekly(ctx context.Context, date models.LocalDate) (*models.StatsResponse, error) {
	return s.buildStats(ctx, date.WeekMonday(), date.WeekSunday())
}

func (s *StatsService) GetMonthly(ctx context.Context, date models.LocalDate) (*models.StatsResponse, error) {
	return s.buildStats(ctx, date.MonthStart(), date.MonthEnd())
}

func (s *StatsService) GetCustom(ctx context.Context, from, to models.LocalDate) (*models.StatsResponse, error) {
	if from.After(to.Time) {
		return nil, &ValidationError{Message: "start date cannot be after end date"}
	}
	return s.buildStats(ctx, from, to)
}

func (s *StatsService) buildStats(ctx context.Context, from, to models.LocalDate) (*models.StatsResponse, error) {
	cacheKey := fmt.Sprintf("stats:%s:%s", from, to)
	var cached models.StatsResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	sessions, err := s.sessions.FindCompletedBetween(ctx, from.StartOfDay(), to.NextDay())
	if err != nil {
		return nil, err
	}

	var grandTotal int64
	for _, session := range sessions {
		grandTotal += session.Elapsed
	}

	byTask := make(map[int64]*models.TaskStatsItem)
	for _, session := range sessions {
		item, ok := byTask[session.TaskID]
		if !ok {
			item = &models.TaskStatsItem{TaskID: session.TaskID, TaskName: session.TaskName}
			byTask[session.TaskID] = item
		}
		item.TotalSeconds += session.Elapsed
		item.SessionCount++
	}
	taskStats := make([]models.TaskStatsItem, 0, len(byTask))
	for _, item := range byTask {
		if grandTotal > 0 {
			item.Percentage = float64(item.TotalSeconds) / float64(grandTotal) * 100
		}
		taskStats = append(taskStats, *item)
	}
	sort.Slice(taskStats, func(i, j int) bool {
		if taskStats[i].TotalSeconds != taskStats[j].TotalSeconds {
			return taskStats[i].TotalSeconds > taskStats[j].TotalSeconds
		}
		return taskStats[i].TaskID < taskStats[j].TaskID
	})

	type trendKey struct {
		date   string
		taskID int64
	}
	byDay := make(map[trendKey]*models.DailyTrend)
	for _, session := range sessions {
		date := models.DateOf(session.EndedAt.Time)
		key := trendKey{date: date.String(), taskID: session.TaskID}
		entry, ok := byDay[key]
		if !ok {
			entry = &models.DailyTrend{Date: date, TaskID: session.TaskID, TaskName: session.TaskName}
			byDay[key] = entry
		}
		entry.TotalSeconds += session.Elapsed
	}
	dailyTrend := make([]models.DailyTrend, 0, len(byDay))
	for _, entry := range byDay {
		dailyTrend = append(dailyTrend, *entry)
	}
	sort.Slice(dailyTrend, func(i, j int) bool {
		if !dailyTrend[i].Date.Equal(dailyTrend[j].Date) {
			return dailyTrend[i].Date.Before(dailyTrend[j].Date.Time)
		}
		return dailyTrend[i].TaskName < dailyTrend[j].TaskName
	})

	resp := &models.StatsResponse{
		From:         from,
		To:           to,
		TotalSeconds: grandTotal,
		TaskStats:    taskStats,
		DailyTrend:   dailyTrend,
	}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}

// GetBySource breaks the range's activity logs down by provenance.
func (s *StatsService) GetBySource(ctx context.Context, from, to models.LocalDate) (*models.SourceStatsResponse, error) {
	if from.After(to.Time) {
		return nil, &ValidationError{Message: "start date cannot be after end date"}
	}

	cacheKey := fmt.Sprintf("stats:by-source:%s:%s", from, to)
	var cached models.SourceStatsResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	logs, err := s.logs.FindByEndedBetween(ctx, from.StartOfDay(), to.NextDay())
	if err != nil {
		return nil, err
	}

	var grandTotal int64
	bySource := make(map[models.ActivitySource]*models.SourceStatsItem)
	for _, l := range logs {
		grandTotal += l.DurationSeconds
		item, ok := bySource[l.Source]
		if !ok {
			item = &models.SourceStatsItem{Source: l.Source}
			bySource[l.Source] = item
		}
		item.TotalSeconds += l.DurationSeconds
		item.LogCount++
	}

	sources := make([]models.SourceStatsItem, 0, len(bySource))
	for _, source := range []models.ActivitySource{models.SourceTimer, models.SourceManual} {
		item, ok := bySource[source]
		if !ok {
			continue
		}
		if grandTotal > 0 {
			item.Percentage = float64(item.TotalSeconds) / float64(grandTotal) * 100
		}
		sources = append(sources, *item)
	}

	resp := &models.SourceStatsResponse{
		From:         from,
		To:           to,
		TotalSeconds: grandTotal,
		Sources:      sources,
	}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}
