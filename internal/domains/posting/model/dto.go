package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreatePostingRequest publishes a new opportunity. Status is always
// initialized to open by the service; clients cannot choose it.
type CreatePostingRequest struct {
	Kind            Kind       `json:"kind"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	CompensationMin *float64   `json:"compensation_min"`
	CompensationMax *float64   `json:"compensation_max"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	RequiredStyles  []string   `json:"required_styles"`
	Urgent          bool       `json:"urgent"`
}

func (r CreatePostingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(KindJob, KindGuestSpot).Error("kind must be job or guest_spot"),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(5, 160),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(20, 8000),
		),
		validation.Field(&r.Location, validation.Required.Error("location is required")),
		validation.Field(&r.CompensationMin, validation.Min(0.0)),
		validation.Field(&r.CompensationMax, validation.Min(0.0)),
		validation.Field(&r.RequiredStyles, validation.Length(0, 20)),
	)
}

// UpdateStatusRequest requests a lifecycle transition.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// ListFilter narrows posting listings. Public listings always filter
// to open postings; owners may request any status explicitly.
type ListFilter struct {
	Kind     Kind
	Status   Status
	Style    string
	Location string
	Urgent   *bool
	StudioID string // owner views
	Cursor   string
	Limit    int
}

// Page is one page of postings plus the next-page cursor.
type Page struct {
	Postings   []*Posting `json:"postings"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
