package models

// TaskStatsItem summarizes one task's share of a stats window.
type TaskStatsItem struct {
	TaskID       int64   `json:"taskId"`
	TaskName     string  `json:"taskName"`
	TotalSeconds int64   `json:"totalSeconds"`
	SessionCount int64   `json:"sessionCount"`
	Percentage   float64 `json:"percentage"`
}

// DailyTrend is a per-day per-task total within a stats window.
type DailyTrend struct {
	Date         LocalDate `json:"date"`
	TaskID       int64     `json:"taskId"`
	TaskName     string    `json:"taskName"`
	TotalSeconds int64     `json:"totalSeconds"`
}

type StatsResponse struct {
	From         LocalDate       `json:"from"`
	To           LocalDate       `json:"to"`
	TotalSeconds int64           `json:"totalSeconds"`
	TaskStats    []TaskStatsItem `json:"taskStats"`
	DailyTrend   []DailyTrend    `json:"dailyTrend"`
}

// SourceStatsItem summarizes one record source (TIMER or MANUAL).
type SourceStatsItem struct {
	Source       ActivitySource `json:"source"`
	TotalSeconds int64          `json:"totalSeconds"`
	LogCount     int64          `json:"logCount"`
	Percentage   float64        `json:"percentage"`
}

type SourceStatsResponse struct {
	From         LocalDate         `json:"from"`
	To           LocalDate         `json:"to"`
	TotalSeconds int64             `json:"totalSeconds"`
	Sources      []SourceStatsItem `json:"sources"`
}
