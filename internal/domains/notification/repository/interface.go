package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/notification/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// DeleteOldRead removes read notifications older than the cutoff
	// and returns how many rows went away.
	DeleteOldRead(ctx context.Context, olderThan time.Time) (int64, error)
}
