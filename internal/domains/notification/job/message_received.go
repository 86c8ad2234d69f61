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
// Message Received Handler
// ============================================

type MessageReceivedHandler struct {
	notifications service.NotificationService
}

func NewMessageReceivedHandler(notifications service.NotificationService) *MessageReceivedHandler {
	return &MessageReceivedHandler{notifications: notifications}
}

func (h *MessageReceivedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload model.MessageReceivedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal message received payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.notifications.RecordMessageReceived(ctx, payload); err != nil {
		log.Error().Err(err).
			Str("message_id", payload.MessageID.String()).
			Msg("failed to record message notification")
		return fmt.Errorf("record message received: %w", err)
	}

	return nil
}
