package service

import (
	"context"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/moderation/model"
	profileModel "fitlink-backend/internal/domains/profile/model"
)

// ModerationService is the admin-facing profile review workflow.
type ModerationService interface {
	// ListPending returns submitted profiles, oldest submission first.
	ListPending(ctx context.Context) ([]model.PendingProfile, error)

	// Verify transitions a submitted profile to verified. Fails with
	// profile.ErrNotSubmitted when the profile is in any other state.
	Verify(ctx context.Context, profileID, adminID uuid.UUID) (*profileModel.Profile, error)

	// Reject transitions a submitted profile to rejected, recording
	// the mandatory reason.
	Reject(ctx context.Context, profileID, adminID uuid.UUID, reason string) (*profileModel.Profile, error)
}
