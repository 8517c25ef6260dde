package models

// Task is a user-defined activity that timers and activity logs attach to.
type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ColorCode   *string   `json:"colorCode"`
	IsActive    bool      `json:"isActive"`
	IsFavorite  bool      `json:"isFavorite"`
	DateCreated LocalTime `json:"dateCreated"`
	DateUpdated LocalTime `json:"dateUpdated"`
}

type TaskCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ColorCode   *string `json:"colorCode"`
}

// TaskUpdateRequest is a partial update; nil fields are left untouched.
type TaskUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ColorCode   *string `json:"colorCode"`
	IsActive    *bool   `json:"isActive"`
	IsFavorite  *bool   `json:"isFavorite"`
}
