package models

import (
	"time"
)

// Envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Actions a form endpoint can dispatch to
const (
	ActionGet    = "get"
	ActionAdd    = "add"
	ActionLike   = "like"
	ActionDelete = "delete"
)

// FormatDate formats a time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// ValidationError represents a validation error for a single field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
