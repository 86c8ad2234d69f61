package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ApplyRequest is an instructor applying to an open posting.
type ApplyRequest struct {
	PostingID    string   `json:"posting_id"`
	Message      string   `json:"message"`
	ProposedRate *float64 `json:"proposed_rate"` // optional hourly counter-rate
}

func (r ApplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PostingID,
			validation.Required.Error("posting_id is required"),
			is.UUIDv4,
		),
		validation.Field(&r.Message, validation.Length(0, 2000)),
		validation.Field(&r.ProposedRate, validation.Min(0.0)),
	)
}

// InviteRequest is a studio inviting an instructor to its posting.
type InviteRequest struct {
	PostingID    string   `json:"posting_id"`
	InstructorID string   `json:"instructor_id"` // instructor profile id
	Message      string   `json:"message"`
	ProposedRate *float64 `json:"proposed_rate"` // optional offered hourly rate
}

func (r InviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PostingID,
			validation.Required.Error("posting_id is required"),
			is.UUIDv4,
		),
		validation.Field(&r.InstructorID,
			validation.Required.Error("instructor_id is required"),
			is.UUIDv4,
		),
		validation.Field(&r.Message, validation.Length(0, 2000)),
		validation.Field(&r.ProposedRate, validation.Min(0.0)),
	)
}

// UpdateStatusRequest requests a lifecycle transition.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}
