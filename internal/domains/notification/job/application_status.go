package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/notification/model"
	"fitlink-backend/internal/domains/notification/service"
)

// ============================================
// Application Status Handler
// ============================================

type ApplicationStatusHandler struct {
	notifications service.NotificationService
}

func NewApplicationStatusHandler(notifications service.NotificationService) *ApplicationStatusHandler {
	return &ApplicationStatusHandler{notifications: notifications}
}

func (h *ApplicationStatusHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.ApplicationStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal application status payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.notifications.RecordApplicationStatus(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("application_id", payload.ApplicationID.String()).
			Msg("failed to record application status notification")
		return fmt.Errorf("record application status: %w", err)
	}

	return nil
}
