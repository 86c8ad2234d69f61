package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InlineImage is an image embedded in a save/submit request as base64.
// It is uploaded to object storage and replaced with a URL before the
// profile document is persisted; raw image data never reaches the database.
type InlineImage struct {
	Kind        string `json:"kind"` // avatar | gallery
	Data        string `json:"data"` // base64-encoded bytes
	ContentType string `json:"content_type"`
}

func (i InlineImage) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Kind,
			validation.Required,
			validation.In("avatar", "gallery").Error("kind must be avatar or gallery"),
		),
		validation.Field(&i.Data, validation.Required.Error("image data is required")),
	)
}

// SaveProfileRequest carries the editable profile fields.
// Used by both SaveDraft and Submit; completeness is only enforced
// on Submit (see Profile.ValidateForSubmission).
type SaveProfileRequest struct {
	FullName       string             `json:"full_name"`
	Headline       string             `json:"headline"`
	Bio            string             `json:"bio"`
	Location       string             `json:"location"`
	Styles         []string           `json:"styles"`
	Certifications []string           `json:"certifications"`
	Experience     []ExperienceEntry  `json:"experience"`
	Availability   []AvailabilitySlot `json:"availability"`
	HourlyRate     *float64           `json:"hourly_rate"`
	Images         []InlineImage      `json:"images"`
}

// Validate checks shapes and bounds, not completeness.
func (r SaveProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 100)),
		validation.Field(&r.Headline, validation.Length(0, 160)),
		validation.Field(&r.Bio, validation.Length(0, 4000)),
		validation.Field(&r.Location, validation.Length(0, 120)),
		validation.Field(&r.Styles, validation.Length(0, 20)),
		validation.Field(&r.Certifications, validation.Length(0, 30)),
		validation.Field(&r.Images, validation.Length(0, 10)),
		validation.Field(&r.HourlyRate, validation.Min(0.0)),
	)
}

// DirectoryFilter narrows the public directory listing.
type DirectoryFilter struct {
	UserType string // instructor | studio | "" for both
	Style    string
	Location string
	Cursor   string // opaque keyset cursor, empty = first page
	Limit    int
}

// DirectoryEntry is the public card shown in search results.
type DirectoryEntry struct {
	ID         uuid.UUID        `json:"id"`
	Handle     string           `json:"handle"`
	UserType   string           `json:"user_type"`
	FullName   string           `json:"full_name"`
	Headline   string           `json:"headline"`
	Location   string           `json:"location"`
	AvatarURL  *string          `json:"avatar_url"`
	Styles     []string         `json:"styles"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// DirectoryPage is one page of directory results plus the cursor for
// the next page ("startAfter" pagination, no offsets).
type DirectoryPage struct {
	Entries    []DirectoryEntry `json:"entries"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
