package model

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModerationStatus is the admin-facing lifecycle of a profile.
type ModerationStatus string

const (
	StatusDraft     ModerationStatus = "draft"
	StatusSubmitted ModerationStatus = "submitted"
	StatusVerified  ModerationStatus = "verified"
	StatusRejected  ModerationStatus = "rejected"
	StatusArchived  ModerationStatus = "archived"
)

// User types, mirrored from the user domain.
const (
	TypeInstructor = "instructor"
	TypeStudio     = "studio"
)

// ExperienceEntry is one job/engagement in an instructor's history.
// Stored as JSONB.
type ExperienceEntry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year,omitempty"` // 0 = ongoing
	Description  string `json:"description,omitempty"`
}

// AvailabilitySlot is a recurring weekly teaching window. Stored as JSONB.
type AvailabilitySlot struct {
	Day   string `json:"day"`   // monday..sunday
	Start string `json:"start"` // "07:00"
	End   string `json:"end"`   // "12:30"
}

// Profile represents an instructor or studio marketplace profile.
type Profile struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	UserType string    `json:"user_type"` // instructor | studio
	Email    string    `json:"email"`
	Handle   string    `json:"handle"` // URL slug derived from the name

	// Content
	FullName       string             `json:"full_name"`
	Headline       string             `json:"headline"`
	Bio            string             `json:"bio"`
	Location       string             `json:"location"`
	AvatarURL      *string            `json:"avatar_url"`
	GalleryURLs    []string           `json:"gallery_urls"`
	Styles         []string           `json:"styles"` // yoga, pilates, hiit, ...
	Certifications []string           `json:"certifications"`
	Experience     []ExperienceEntry  `json:"experience"`
	Availability   []AvailabilitySlot `json:"availability"`
	HourlyRate     *decimal.Decimal   `json:"hourly_rate"`

	// Moderation
	Status          ModerationStatus `json:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	VerifiedAt      *time.Time       `json:"verified_at,omitempty"`
	RejectedAt      *time.Time       `json:"rejected_at,omitempty"`
	ReviewedBy      *uuid.UUID       `json:"-"`

	// ProfileCompleted gates marketplace participation independent of
	// moderation status.
	ProfileCompleted bool `json:"profile_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPubliclyVisible reports whether the profile may appear in the
// public directory and matching results.
func (p *Profile) IsPubliclyVisible() bool {
	return p.Status == StatusVerified && p.ProfileCompleted
}

// CanParticipate reports whether the profile owner may apply to or
// publish postings.
func (p *Profile) CanParticipate() bool {
	return p.ProfileCompleted && p.Status == StatusVerified
}

// ValidateForSubmission runs the required-field checks in a fixed
// order; the first failing check wins and the rest are not evaluated.
func (p *Profile) ValidateForSubmission() error {
	if p.FullName == "" {
		return NewSubmissionError("full_name", "name is required")
	}
	if utf8.RuneCountInString(p.Headline) < 10 {
		return NewSubmissionError("headline", "headline must be at least 10 characters")
	}
	if p.Location == "" {
		return NewSubmissionError("location", "location is required")
	}
	if utf8.RuneCountInString(p.Bio) < 60 {
		return NewSubmissionError("bio", "bio must be at least 60 characters")
	}
	if len(p.Experience) == 0 {
		return NewSubmissionError("experience", "at least one experience entry is required")
	}
	if len(p.Availability) == 0 {
		return NewSubmissionError("availability", "at least one availability slot is required")
	}
	if len(p.Certifications) == 0 {
		return NewSubmissionError("certifications", "at least one certification is required")
	}
	if len(p.Styles) == 0 {
		return NewSubmissionError("styles", "at least one fitness style is required")
	}
	if p.AvatarURL == nil || *p.AvatarURL == "" {
		return NewSubmissionError("avatar", "a profile photo is required")
	}
	return nil
}
