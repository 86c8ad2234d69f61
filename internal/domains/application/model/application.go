package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the application lifecycle state.
type Status string

const (
	StatusPending     Status = "pending"     // instructor applied, awaiting review
	StatusInvited     Status = "invited"     // studio reached out first
	StatusShortlisted Status = "shortlisted" // studio marked for follow-up
	StatusOffered     Status = "offered"     // studio extended a formal offer
	StatusAccepted    Status = "accepted"    // terminal
	StatusRejected    Status = "rejected"    // terminal
	StatusWithdrawn   Status = "withdrawn"   // terminal, applicant-initiated
)

// Initiator records which side created the application and fixes its
// entry status: apply starts at pending, invite starts at invited.
type Initiator string

const (
	InitiatorApply  Initiator = "apply"
	InitiatorInvite Initiator = "invite"
)

// transitions is the authoritative table of allowed status changes.
// Terminal states have no outgoing edges, so accepted can never become
// rejected and vice versa.
var transitions = map[Status][]Status{
	StatusPending:     {StatusShortlisted, StatusOffered, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusInvited:     {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusShortlisted: {StatusOffered, StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusOffered:     {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:    {},
	StatusRejected:    {},
	StatusWithdrawn:   {},
}

// EntryStatus returns the initial status for a given initiator.
func EntryStatus(initiator Initiator) (Status, error) {
	switch initiator {
	case InitiatorApply:
		return StatusPending, nil
	case InitiatorInvite:
		return StatusInvited, nil
	default:
		return "", ErrInvalidInitiator
	}
}

// Application links an applicant profile to a posting.
type Application struct {
	ID           uuid.UUID        `json:"id"`
	PostingID    uuid.UUID        `json:"posting_id"`
	ApplicantID  uuid.UUID        `json:"applicant_id"` // instructor profile
	StudioID     uuid.UUID        `json:"studio_id"`    // posting owner, denormalized
	Initiator    Initiator        `json:"initiator"`
	Status       Status           `json:"status"`
	Message      string           `json:"message,omitempty"`       // cover note or invite note
	ProposedRate *decimal.Decimal `json:"proposed_rate,omitempty"` // hourly, optional

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether no further transition is possible.
func (a *Application) IsTerminal() bool {
	return len(transitions[a.Status]) == 0
}

// Transition validates and applies a status change against the table.
func (a *Application) Transition(target Status) error {
	for _, allowed := range transitions[a.Status] {
		if allowed == target {
			a.Status = target
			return nil
		}
	}
	return NewInvalidTransitionError(a.Status, target)
}
