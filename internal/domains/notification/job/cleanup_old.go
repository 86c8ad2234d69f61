package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/notification/service"
)

// ============================================
// Cleanup Old Read Notifications Handler
// ============================================

const defaultRetentionDays = 30

type CleanupOldNotificationsHandler struct {
	notifications service.NotificationService
}

func NewCleanupOldNotificationsHandler(notifications service.NotificationService) *CleanupOldNotificationsHandler {
	return &CleanupOldNotificationsHandler{notifications: notifications}
}

// Payload is optional; it may override the retention window in days.
type cleanupPayload struct {
	Days int `json:"days"`
}

func (h *CleanupOldNotificationsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload cleanupPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Warn().Err(err).Msg("bad cleanup payload, using default retention")
		}
	}

	days := payload.Days
	if days <= 0 {
		days = defaultRetentionDays
	}

	deleted, err := h.notifications.CleanupOldRead(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		log.Error().Err(err).Msg("failed to clean up old notifications")
		return err
	}

	log.Info().
		Int("days", days).
		Int64("deleted", deleted).
		Msg("notification cleanup finished")

	return nil
}
