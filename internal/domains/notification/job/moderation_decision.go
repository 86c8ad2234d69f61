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
// Moderation Decision Handler
// ============================================

type ModerationDecisionHandler struct {
	notifications service.NotificationService
}

func NewModerationDecisionHandler(notifications service.NotificationService) *ModerationDecisionHandler {
	return &ModerationDecisionHandler{notifications: notifications}
}

func (h *ModerationDecisionHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.ModerationDecisionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal moderation decision payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.notifications.RecordModerationDecision(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("profile_id", payload.ProfileID.String()).
			Msg("failed to record moderation decision notification")
		return fmt.Errorf("record moderation decision: %w", err)
	}

	log.Info().
		Str("profile_id", payload.ProfileID.String()).
		Str("decision", payload.Decision).
		Msg("moderation decision notification recorded")

	return nil
}
