package models

// ErrorResponse is the error body shape for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
