package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeProfileNotFound    = "PRF001"
	ErrCodeProfileIncomplete  = "PRF002"
	ErrCodeProfileArchived    = "PRF003"
	ErrCodeInvalidImage       = "PRF004"
	ErrCodeNotProfileOwner    = "PRF005"
	ErrCodeProfileNotVisible  = "PRF006"
	ErrCodeHandleAlreadyTaken = "PRF007"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileIncomplete  = errors.New("profile is incomplete")
	ErrProfileArchived    = errors.New("profile is archived")
	ErrNotProfileOwner    = errors.New("not the profile owner")
	ErrProfileNotVisible  = errors.New("profile is not publicly visible")
	ErrHandleAlreadyTaken = errors.New("handle already taken")

	// ErrNotSubmitted is returned when a moderation decision targets a
	// profile that is not currently in the submitted state.
	ErrNotSubmitted = errors.New("profile is not awaiting moderation")
)

// SubmissionError reports the first failing required-field check.
type SubmissionError struct {
	Field   string
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("cannot submit profile: %s", e.Message)
}

// Unwrap lets callers match errors.Is(err, ErrProfileIncomplete).
func (e *SubmissionError) Unwrap() error {
	return ErrProfileIncomplete
}

func NewSubmissionError(field, message string) *SubmissionError {
	return &SubmissionError{Field: field, Message: message}
}
