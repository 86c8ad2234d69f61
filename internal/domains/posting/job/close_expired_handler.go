package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/posting/repository"
)

// ============================================
// Close Expired Postings Handler
// ============================================

// CloseExpiredHandler retires open postings whose end date has passed.
// Jobs become closed, guest spots become cancelled. Enqueued hourly
// by the scheduler.
type CloseExpiredHandler struct {
	postings repository.PostingRepository
}

func NewCloseExpiredHandler(postings repository.PostingRepository) *CloseExpiredHandler {
	return &CloseExpiredHandler{postings: postings}
}

func (h *CloseExpiredHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	closed, err := h.postings.CloseExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to close expired postings")
		return fmt.Errorf("close expired postings: %w", err)
	}

	if closed > 0 {
		log.Info().Int("count", closed).Msg("expired postings retired")
	}

	return nil
}
