package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Error codes
const (
	ErrCodeReasonRequired = "MOD001"
	ErrCodeNotSubmitted   = "MOD002"
)

var (
	ErrReasonRequired = errors.New("rejection reason is required")
)

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r RejectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reason,
			validation.Required.Error("rejection reason is required"),
			validation.Length(3, 1000),
		),
	)
}

// PendingProfile is the moderation queue entry shown to admins.
type PendingProfile struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	UserType    string     `json:"user_type"`
	FullName    string     `json:"full_name"`
	Headline    string     `json:"headline"`
	Location    string     `json:"location"`
	AvatarURL   *string    `json:"avatar_url"`
	SubmittedAt *time.Time `json:"submitted_at"`
}
