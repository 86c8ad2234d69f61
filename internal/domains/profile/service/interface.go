package service

import (
	"context"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/profile/model"
)

// ProfileService is the user-facing profile pipeline:
// draft -> submit -> (moderation happens in the moderation domain).
type ProfileService interface {
	// CreateDraft creates the empty draft profile that accompanies a
	// new account. Idempotent: an existing profile is left untouched.
	CreateDraft(ctx context.Context, userID uuid.UUID, userType, email, fullName string) error

	// SaveDraft upserts profile fields without completeness checks.
	// The profile returns to draft status.
	SaveDraft(ctx context.Context, userID uuid.UUID, req model.SaveProfileRequest) (*model.Profile, error)

	// Submit validates the profile for marketplace participation,
	// uploads any inline images to object storage, and moves the
	// profile to submitted. Re-submission is allowed and overwrites.
	Submit(ctx context.Context, userID uuid.UUID, req model.SaveProfileRequest) (*model.Profile, error)

	// GetOwn returns the caller's profile regardless of status.
	GetOwn(ctx context.Context, userID uuid.UUID) (*model.Profile, error)

	// GetPublic returns a profile only when it is publicly visible.
	GetPublic(ctx context.Context, id uuid.UUID) (*model.Profile, error)

	// GetPublicByHandle is GetPublic keyed by the profile's URL slug.
	GetPublicByHandle(ctx context.Context, handle string) (*model.Profile, error)

	// Directory lists publicly visible profiles.
	Directory(ctx context.Context, filter model.DirectoryFilter) (*model.DirectoryPage, error)

	// Archive soft-deletes the caller's profile.
	Archive(ctx context.Context, userID uuid.UUID) error
}
