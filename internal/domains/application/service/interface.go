package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"fitlink-backend/internal/domains/application/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// TaskEnqueuer is the slice of the asynq client the service needs.
// Satisfied by *asynq.Client; faked in tests.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ProfileGetter resolves profiles by owner or by id. Satisfied by the
// profile repository.
type ProfileGetter interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*profilemodel.Profile, error)
}

type ApplicationService interface {
	// Apply creates a pending application from the caller's instructor
	// profile against an open posting. Duplicates are rejected.
	Apply(ctx context.Context, userID uuid.UUID, req *model.ApplyRequest) (*model.Application, error)

	// Invite creates an invited application from a studio toward an
	// instructor, against the studio's own open posting.
	Invite(ctx context.Context, userID uuid.UUID, req *model.InviteRequest) (*model.Application, error)

	// GetByID returns an application visible to its participants only.
	GetByID(ctx context.Context, userID, applicationID uuid.UUID) (*model.Application, error)

	// UpdateStatus applies a lifecycle transition on behalf of a
	// participant. An accepted guest-spot application fills its posting.
	UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, target model.Status) (*model.Application, error)

	// ListByPosting returns a posting's applications for its owner.
	ListByPosting(ctx context.Context, userID, postingID uuid.UUID, statuses []model.Status) ([]*model.Application, error)

	// ListOwn returns the caller's applications as applicant.
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Application, error)
}
