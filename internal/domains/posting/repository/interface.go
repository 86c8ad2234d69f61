package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/posting/model"
)

// PostingRepository defines posting data access.
// There is deliberately no Delete: postings referenced by applications
// are only ever retired by status.
type PostingRepository interface {
	Create(ctx context.Context, p *model.Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Posting, error)
	Update(ctx context.Context, p *model.Posting) error

	// List pages through postings, newest first, keyset pagination.
	List(ctx context.Context, filter model.ListFilter) (*model.Page, error)

	// IncrementApplicationCount bumps the denormalized counter.
	IncrementApplicationCount(ctx context.Context, id uuid.UUID) error

	// CloseExpired retires open postings whose end date has passed:
	// jobs close, guest spots cancel. Returns the number retired.
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}
