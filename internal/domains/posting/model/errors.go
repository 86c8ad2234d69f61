package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodePostingNotFound    = "PST001"
	ErrCodeNotPostingOwner    = "PST002"
	ErrCodeInvalidTransition  = "PST003"
	ErrCodeStudioNotEligible  = "PST004"
	ErrCodeInvalidPostingKind = "PST005"
)

var (
	ErrPostingNotFound    = errors.New("posting not found")
	ErrNotPostingOwner    = errors.New("not the posting owner")
	ErrInvalidTransition  = errors.New("invalid posting status transition")
	ErrStudioNotEligible  = errors.New("studio profile must be verified and completed to publish postings")
	ErrInvalidPostingKind = errors.New("invalid posting kind")
)

// InvalidTransitionError reports which transition was refused.
type InvalidTransitionError struct {
	Kind Kind
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition %s posting from %s to %s", e.Kind, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewInvalidTransitionError(kind Kind, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{Kind: kind, From: from, To: to}
}
