package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/profile/model"
)

// ProfileRepository defines profile data access, including the
// moderation transitions used by the admin workflow.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*model.Profile, error)

	// Update persists all editable fields plus status/flags.
	Update(ctx context.Context, p *model.Profile) error

	// Directory lists publicly visible profiles (verified + completed)
	// with keyset pagination, newest first.
	Directory(ctx context.Context, filter model.DirectoryFilter) (*model.DirectoryPage, error)

	// ListPendingModeration returns submitted profiles ordered by
	// submitted_at ascending — oldest submission first.
	ListPendingModeration(ctx context.Context) ([]*model.Profile, error)

	// MarkVerified transitions submitted -> verified. Returns
	// model.ErrNotSubmitted when the row exists but is in another
	// state, so the precondition and the write are one statement.
	MarkVerified(ctx context.Context, id, reviewedBy uuid.UUID, at time.Time) error

	// MarkRejected transitions submitted -> rejected with a reason.
	MarkRejected(ctx context.Context, id, reviewedBy uuid.UUID, reason string, at time.Time) error
}
