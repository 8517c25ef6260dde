package models

// UserProfile is the singleton nickname record of this single-user system.
type UserProfile struct {
	ID          int64     `json:"id"`
	Nickname    string    `json:"nickname"`
	DateCreated LocalTime `json:"dateCreated"`
	DateUpdated LocalTime `json:"dateUpdated"`
}

type UserProfileRequest struct {
	Nickname string `json:"nickname"`
}
