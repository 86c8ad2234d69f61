package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/moderation/model"
	notifModel "fitlink-backend/internal/domains/notification/model"
	profileModel "fitlink-backend/internal/domains/profile/model"
	profileRepo "fitlink-backend/internal/domains/profile/repository"
	"fitlink-backend/internal/shared"
	pkgcache "fitlink-backend/pkg/cache"
)

// TaskEnqueuer is the slice of the asynq client the service needs.
// Satisfied by *asynq.Client; faked in tests.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type moderationService struct {
	profiles profileRepo.ProfileRepository
	tasks    TaskEnqueuer
	cache    pkgcache.Cache
}

func NewModerationService(
	profiles profileRepo.ProfileRepository,
	tasks TaskEnqueuer,
	cache pkgcache.Cache,
) ModerationService {
	return &moderationService{
		profiles: profiles,
		tasks:    tasks,
		cache:    cache,
	}
}

func (s *moderationService) ListPending(ctx context.Context) ([]model.PendingProfile, error) {
	profiles, err := s.profiles.ListPendingModeration(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending profiles: %w", err)
	}

	// The repository orders by submitted_at ascending; keep the queue
	// shape thin for the admin UI.
	pending := make([]model.PendingProfile, 0, len(profiles))
	for _, p := range profiles {
		pending = append(pending, model.PendingProfile{
			ID:          p.ID,
			UserID:      p.UserID,
			UserType:    p.UserType,
			FullName:    p.FullName,
			Headline:    p.Headline,
			Location:    p.Location,
			AvatarURL:   p.AvatarURL,
			SubmittedAt: p.SubmittedAt,
		})
	}

	return pending, nil
}

func (s *moderationService) Verify(ctx context.Context, profileID, adminID uuid.UUID) (*profileModel.Profile, error) {
	// 1. CONDITIONAL TRANSITION
	// The submitted-state precondition is enforced in the same
	// statement as the write; a profile already decided on (or still
	// in draft) fails with ErrNotSubmitted.
	if err := s.profiles.MarkVerified(ctx, profileID, adminID, time.Now()); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	// 2. SIDE EFFECTS
	// Verified profiles become publicly visible; drop the cached
	// directory pages so they appear without waiting for TTL.
	if err := s.cache.DeletePattern(ctx, "directory:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate directory cache after verify")
	}

	s.enqueueDecision(p, "verified", "")
	return p, nil
}

func (s *moderationService) Reject(ctx context.Context, profileID, adminID uuid.UUID, reason string) (*profileModel.Profile, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrReasonRequired
	}

	if err := s.profiles.MarkRejected(ctx, profileID, adminID, reason, time.Now()); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	s.enqueueDecision(p, "rejected", reason)
	return p, nil
}

// enqueueDecision hands the notification off to the worker. Failures
// are logged, not propagated: the moderation decision itself is
// already durable.
func (s *moderationService) enqueueDecision(p *profileModel.Profile, decision, reason string) {
	payload, err := json.Marshal(notifModel.ModerationDecisionPayload{
		ProfileID: p.ID,
		UserID:    p.UserID,
		Decision:  decision,
		Reason:    reason,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal moderation decision payload")
		return
	}

	task := asynq.NewTask(shared.TypeModerationDecision, payload)
	if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueNotification), asynq.MaxRetry(3)); err != nil {
		log.Error().Err(err).
			Str("profile_id", p.ID.String()).
			Msg("failed to enqueue moderation decision notification")
	}
}
