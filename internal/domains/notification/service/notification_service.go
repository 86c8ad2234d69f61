package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/notification/model"
	"fitlink-backend/internal/domains/notification/repository"
	"fitlink-backend/internal/shared/utils"
)

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]*model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *notificationService) RecordModerationDecision(ctx context.Context, payload model.ModerationDecisionPayload) error {
	title := "Profile verified"
	message := "Your profile has been verified and is now visible in the directory."
	if payload.Decision == "rejected" {
		title = "Profile needs changes"
		message = "Your profile was not approved."
		if payload.Reason != "" {
			message = fmt.Sprintf("Your profile was not approved: %s", payload.Reason)
		}
	}

	return s.create(ctx, &model.Notification{
		UserID:  payload.UserID,
		Type:    model.NotificationTypeModerationDecision,
		Title:   title,
		Message: message,
		Data: map[string]interface{}{
			"decision": payload.Decision,
		},
		ReferenceType: utils.StringPtr(model.ReferenceProfile),
		ReferenceID:   &payload.ProfileID,
	})
}

func (s *notificationService) RecordApplicationStatus(ctx context.Context, payload model.ApplicationStatusPayload) error {
	return s.create(ctx, &model.Notification{
		UserID:  payload.RecipientID,
		Type:    model.NotificationTypeApplicationStatus,
		Title:   fmt.Sprintf("Application %s", payload.NewStatus),
		Message: fmt.Sprintf("An application for %q is now %s.", payload.PostingTitle, payload.NewStatus),
		Data: map[string]interface{}{
			"posting_id": payload.PostingID.String(),
			"status":     payload.NewStatus,
		},
		ReferenceType: utils.StringPtr(model.ReferenceApplication),
		ReferenceID:   &payload.ApplicationID,
	})
}

func (s *notificationService) RecordMessageReceived(ctx context.Context, payload model.MessageReceivedPayload) error {
	return s.create(ctx, &model.Notification{
		UserID:  payload.RecipientID,
		Type:    model.NotificationTypeMessageReceived,
		Title:   "New message",
		Message: "You have a new message.",
		Data: map[string]interface{}{
			"message_id": payload.MessageID.String(),
			"sender_id":  payload.SenderID.String(),
		},
		ReferenceType: utils.StringPtr(model.ReferenceConversation),
		ReferenceID:   &payload.ConversationID,
	})
}

func (s *notificationService) CleanupOldRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	deleted, err := s.notifications.DeleteOldRead(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("old read notifications removed")
	}

	return deleted, nil
}

func (s *notificationService) create(ctx context.Context, n *model.Notification) error {
	now := time.Now()
	n.ID = uuid.New()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := s.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}
