package service

import (
	"context"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/posting/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// ProfileGetter resolves the acting user's profile. Satisfied by the
// profile repository; kept narrow so this package does not depend on
// the whole profile domain.
type ProfileGetter interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error)
}

type PostingService interface {
	// Create publishes a new open posting owned by the caller's studio
	// profile. The studio must be verified and completed.
	Create(ctx context.Context, userID uuid.UUID, req *model.CreatePostingRequest) (*model.Posting, error)

	// GetByID returns a single posting.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Posting, error)

	// UpdateStatus applies a lifecycle transition on behalf of the
	// posting's owner. Requesting the current status is a no-op.
	UpdateStatus(ctx context.Context, userID, postingID uuid.UUID, target model.Status) (*model.Posting, error)

	// List returns the public feed. Only open postings are visible.
	List(ctx context.Context, filter model.ListFilter) (*model.Page, error)

	// ListOwn returns the caller's own postings in any status.
	ListOwn(ctx context.Context, userID uuid.UUID, filter model.ListFilter) (*model.Page, error)
}
