package models

// ActivitySource distinguishes timer-derived records from manual entries.
type ActivitySource string

const (
	SourceTimer  ActivitySource = "TIMER"
	SourceManual ActivitySource = "MANUAL"
)

// ActivityLog is a finalized time interval attributed to a task.
type ActivityLog struct {
	ID              int64          `json:"id"`
	TaskID          int64          `json:"taskId"`
	TaskName        string         `json:"taskName"`
	ColorCode       *string        `json:"colorCode"`
	StartedAt       LocalTime      `json:"startedAt"`
	EndedAt         LocalTime      `json:"endedAt"`
	DurationSeconds int64          `json:"durationSeconds"`
	Source          ActivitySource `json:"source"`
	Memo            *string        `json:"memo"`
	DateCreated     LocalTime      `json:"dateCreated"`
	DateUpdated     LocalTime      `json:"dateUpdated"`
}

// ActivityLogResponse carries a log plus the advisory overlap warning, which
// never blocks a write.
type ActivityLogResponse struct {
	ActivityLog
	Warning *string `json:"warning"`
}

type ActivityLogCreateRequest struct {
	TaskID    int64     `json:"taskId"`
	StartedAt LocalTime `json:"startedAt"`
	EndedAt   LocalTime `json:"endedAt"`
	Memo      *string   `json:"memo"`
}

type ActivityLogUpdateRequest struct {
	TaskID    *int64     `json:"taskId"`
	StartedAt *LocalTime `json:"startedAt"`
	EndedAt   *LocalTime `json:"endedAt"`
	Memo      *string    `json:"memo"`
}
