package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes permanent job postings from one-off guest spots.
type Kind string

const (
	KindJob       Kind = "job"
	KindGuestSpot Kind = "guest_spot"
)

// Status is the posting lifecycle state.
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"    // jobs
	StatusFilled    Status = "filled"    // guest spots
	StatusCancelled Status = "cancelled" // guest spots
)

// transitions is the per-kind lifecycle table. Postings start open;
// every non-open state is terminal.
var transitions = map[Kind]map[Status][]Status{
	KindJob: {
		StatusOpen: {StatusClosed},
	},
	KindGuestSpot: {
		StatusOpen: {StatusFilled, StatusCancelled},
	},
}

// Posting represents a job or guest-spot opportunity published by a
// studio profile.
type Posting struct {
	ID       uuid.UUID `json:"id"`
	StudioID uuid.UUID `json:"studio_id"` // owning studio profile
	Kind     Kind      `json:"kind"`
	Status   Status    `json:"status"`

	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Location        string           `json:"location"`
	CompensationMin *decimal.Decimal `json:"compensation_min"`
	CompensationMax *decimal.Decimal `json:"compensation_max"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	RequiredStyles  []string         `json:"required_styles"`
	Urgent          bool             `json:"urgent"`

	ApplicationCount int `json:"application_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOpen reports whether the posting accepts applications.
func (p *Posting) IsOpen() bool {
	return p.Status == StatusOpen
}

// Transition validates and applies a status change.
// Requesting the current status is an idempotent no-op (changed=false),
// so closing an already-closed posting never errors.
func (p *Posting) Transition(target Status) (changed bool, err error) {
	if p.Status == target {
		return false, nil
	}

	for _, allowed := range transitions[p.Kind][p.Status] {
		if allowed == target {
			p.Status = target
			return true, nil
		}
	}

	return false, NewInvalidTransitionError(p.Kind, p.Status, target)
}

// ValidTarget reports whether target is a state this kind can ever be in.
func ValidTarget(kind Kind, target Status) bool {
	switch kind {
	case KindJob:
		return target == StatusOpen || target == StatusClosed
	case KindGuestSpot:
		return target == StatusOpen || target == StatusFilled || target == StatusCancelled
	}
	return false
}
