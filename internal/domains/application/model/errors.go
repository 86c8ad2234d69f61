package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeApplicationNotFound  = "APL001"
	ErrCodeDuplicateApplication = "APL002"
	ErrCodeInvalidTransition    = "APL003"
	ErrCodeApplicantNotEligible = "APL004"
	ErrCodePostingNotOpen       = "APL005"
	ErrCodeNotParticipant       = "APL006"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("an application for this posting already exists")
	ErrInvalidTransition    = errors.New("invalid application status transition")
	ErrApplicantNotEligible = errors.New("applicant profile must be a verified, completed instructor")
	ErrPostingNotOpen       = errors.New("posting is not open for applications")
	ErrNotParticipant       = errors.New("not a participant in this application")
	ErrInvalidInitiator     = errors.New("invalid application initiator")
)

// InvalidTransitionError reports which transition was refused.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition application from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}
