package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/models"
)

// TimeTreeService composes activity logs into calendar views. Logs group by
// the calendar date of their start instant; the projections never write back.
type TimeTreeService struct {
	logs  ActivityLogStore
	cache *cache.Cache
}

func NewTimeTreeService(logs ActivityLogStore, c *cache.Cache) *TimeTreeService {
	return &TimeTreeService{logs: logs, cache: c}
}

func (s *TimeTreeService) GetDaily(ctx context.Context, date models.LocalDate) (*models.DailyTimeTreeResponse, error) {
	cacheKey := "timetree:daily:" + date.String()
	var cached models.DailyTimeTreeResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	logs, err := s.logs.FindByStartedBetween(ctx, date.StartOfDay(), date.NextDay())
	if err != nil {
		return nil, err
	}

	blocks := make([]models.TimeTreeBlock, 0, len(logs))
	var total int64
	for i := range logs {
		blocks = append(blocks, models.NewTimeTreeBlock(&logs[i]))
		total += logs[i].DurationSeconds
	}

	resp := &models.DailyTimeTreeResponse{
		Date:    date,
		Blocks:  blocks,
		Summary: models.DailySummary{TotalSeconds: total},
	}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}

// GetWeekly returns the Monday-to-Sunday week containing date, one entry per
// day whether or not anything was logged.
func (s *TimeTreeService) GetWeekly(ctx context.Context, date models.LocalDate) (*models.WeeklyTimeTreeResponse, error) {
	monday := date.WeekMonday()
	sunday := date.WeekSunday()

	cacheKey := "timetree:weekly:" + monday.String()
	var cached models.WeeklyTimeTreeResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	logs, err := s.logs.FindByStartedBetween(ctx, monday.StartOfDay(), sunday.NextDay())
	if err != nil {
		return nil, err
	}
	logsByDate := groupByStartDate(logs)

	days := make([]models.WeeklyDayEntry, 0, 7)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDays(offset)
		dayLogs := logsByDate[day.String()]

		blocks := make([]models.TimeTreeBlock, 0, len(dayLogs))
		var total int64
		for i := range dayLogs {
			blocks = append(blocks, models.NewTimeTreeBlock(&dayLogs[i]))
			total += dayLogs[i].DurationSeconds
		}
		days = append(days, models.WeeklyDayEntry{Date: day, Blocks: blocks, TotalSeconds: total})
	}

	resp := &models.WeeklyTimeTreeResponse{WeekStart: monday, WeekEnd: sunday, Days: days}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}

// GetMonthly returns per-day totals and task shares for heatmap rendering.
func (s *TimeTreeService) GetMonthly(ctx context.Context, year int, month time.Month) (*models.MonthlyTimeTreeResponse, error) {
	first := models.NewLocalDate(year, month, 1)
	last := first.MonthEnd()

	cacheKey := "timetree:monthly:" + first.String()
	var cached models.MonthlyTimeTreeResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	logs, err := s.logs.FindByStartedBetween(ctx, first.StartOfDay(), last.NextDay())
	if err != nil {
		return nil, err
	}
	logsByDate := groupByStartDate(logs)

	days := make([]models.MonthlyDayEntry, 0, last.Day())
	for day := 1; day <= last.Day(); day++ {
		date := models.NewLocalDate(year, month, day)
		dayLogs := logsByDate[date.String()]

		var total int64
		byTask := make(map[int64]*models.MonthlyTaskBreakdown)
		for _, l := range dayLogs {
			total += l.DurationSeconds
			item, ok := byTask[l.TaskID]
			if !ok {
				item = &models.MonthlyTaskBreakdown{TaskID: l.TaskID, TaskName: l.TaskName, ColorCode: l.ColorCode}
				byTask[l.TaskID] = item
			}
			item.TotalSeconds += l.DurationSeconds
		}
		breakdown := make([]models.MonthlyTaskBreakdown, 0, len(byTask))
		for _, item := range byTask {
			breakdown = append(breakdown, *item)
		}
		sort.Slice(breakdown, func(i, j int) bool {
			if breakdown[i].TotalSeconds != breakdown[j].TotalSeconds {
				return breakdown[i].TotalSeconds > breakdown[j].TotalSeconds
			}
			return breakdown[i].TaskID < breakdown[j].TaskID
		})

		days = append(days, models.MonthlyDayEntry{Date: date, TotalSeconds: total, TaskBreakdown: breakdown})
	}

	resp := &models.MonthlyTimeTreeResponse{
		Month: fmt.Sprintf("%04d-%02d", year, int(month)),
		Days:  days,
	}
	s.cache.SetJSON(ctx, cacheKey, resp)
	return resp, nil
}

func groupByStartDate(logs []models.ActivityLog) map[string][]models.ActivityLog {
	grouped := make(map[string][]models.ActivityLog)
	for _, l := range logs {
		key := models.DateOf(l.StartedAt.Time).String()
		grouped[key] = append(grouped[key], l)
	}
	return grouped
}
