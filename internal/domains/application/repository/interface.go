package repository

import (
	"context"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/application/model"
)

// ApplicationRepository persists applications. The (applicant_id,
// posting_id) pair is unique at the schema level; Create surfaces a
// violation as ErrDuplicateApplication.
type ApplicationRepository interface {
	Create(ctx context.Context, a *model.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error
	ListByPosting(ctx context.Context, postingID uuid.UUID, statuses []model.Status) ([]*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error)
}
