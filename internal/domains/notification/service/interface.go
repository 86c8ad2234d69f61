package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/notification/model"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Called from worker task handlers.
	RecordModerationDecision(ctx context.Context, payload model.ModerationDecisionPayload) error
	RecordApplicationStatus(ctx context.Context, payload model.ApplicationStatusPayload) error
	RecordMessageReceived(ctx context.Context, payload model.MessageReceivedPayload) error
	CleanupOldRead(ctx context.Context, olderThan time.Duration) (int64, error)
}
