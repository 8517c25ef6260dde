package models

// TimeTreeBlock is one activity log rendered on the calendar.
type TimeTreeBlock struct {
	ActivityLogID   int64          `json:"activityLogId"`
	TaskID          int64          `json:"taskId"`
	TaskName        string         `json:"taskName"`
	ColorCode       *string        `json:"colorCode"`
	StartedAt       LocalTime      `json:"startedAt"`
	EndedAt         LocalTime      `json:"endedAt"`
	DurationSeconds int64          `json:"durationSeconds"`
	Source          ActivitySource `json:"source"`
	Memo            *string        `json:"memo"`
}

// NewTimeTreeBlock projects an activity log into a calendar block.
func NewTimeTreeBlock(log *ActivityLog) TimeTreeBlock {
	return TimeTreeBlock{
		ActivityLogID:   log.ID,
		TaskID:          log.TaskID,
		TaskName:        log.TaskName,
		ColorCode:       log.ColorCode,
		StartedAt:       log.StartedAt,
		EndedAt:         log.EndedAt,
		DurationSeconds: log.DurationSeconds,
		Source:          log.Source,
		Memo:            log.Memo,
	}
}

type DailySummary struct {
	TotalSeconds int64 `json:"totalSeconds"`
}

type DailyTimeTreeResponse struct {
	Date    LocalDate       `json:"date"`
	Blocks  []TimeTreeBlock `json:"blocks"`
	Summary DailySummary    `json:"summary"`
}

type WeeklyDayEntry struct {
	Date         LocalDate       `json:"date"`
	Blocks       []TimeTreeBlock `json:"blocks"`
	TotalSeconds int64           `json:"totalSeconds"`
}

type WeeklyTimeTreeResponse struct {
	WeekStart LocalDate        `json:"weekStart"`
	WeekEnd   LocalDate        `json:"weekEnd"`
	Days      []WeeklyDayEntry `json:"days"`
}

type MonthlyTaskBreakdown struct {
	TaskID       int64   `json:"taskId"`
	TaskName     string  `json:"taskName"`
	ColorCode    *string `json:"colorCode"`
	TotalSeconds int64   `json:"totalSeconds"`
}

type MonthlyDayEntry struct {
	Date          LocalDate              `json:"date"`
	TotalSeconds  int64                  `json:"totalSeconds"`
	TaskBreakdown []MonthlyTaskBreakdown `json:"taskBreakdown"`
}

type MonthlyTimeTreeResponse struct {
	Month string            `json:"month"`
	Days  []MonthlyDayEntry `json:"days"`
}
