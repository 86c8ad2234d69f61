package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/posting/model"
	"fitlink-backend/internal/domains/posting/repository"
	profilemodel "fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/shared/utils"
	pkgcache "fitlink-backend/pkg/cache"
)

const (
	feedCacheKey = "postings:%s:%s:%s" // kind:style:location (first page only)
	feedCacheTTL = 2 * time.Minute
)

type postingService struct {
	postings repository.PostingRepository
	profiles ProfileGetter
	cache    pkgcache.Cache
}

func NewPostingService(postings repository.PostingRepository, profiles ProfileGetter, cache pkgcache.Cache) PostingService {
	return &postingService{
		postings: postings,
		profiles: profiles,
		cache:    cache,
	}
}

func (s *postingService) Create(ctx context.Context, userID uuid.UUID, req *model.CreatePostingRequest) (*model.Posting, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrStudioNotEligible
	}
	if profile.UserType != profilemodel.TypeStudio || !profile.CanParticipate() {
		return nil, model.ErrStudioNotEligible
	}

	now := time.Now()
	posting := &model.Posting{
		ID:              uuid.New(),
		StudioID:        profile.ID,
		Kind:            req.Kind,
		Status:          model.StatusOpen,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		CompensationMin: utils.ParseFloatToDecimal(req.CompensationMin),
		CompensationMax: utils.ParseFloatToDecimal(req.CompensationMax),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		RequiredStyles:  req.RequiredStyles,
		Urgent:          req.Urgent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.postings.Create(ctx, posting); err != nil {
		return nil, fmt.Errorf("failed to create posting: %w", err)
	}

	s.invalidateFeed(ctx)

	log.Info().
		Str("posting_id", posting.ID.String()).
		Str("studio_id", posting.StudioID.String()).
		Str("kind", string(posting.Kind)).
		Msg("posting published")

	return posting, nil
}

func (s *postingService) GetByID(ctx context.Context, id uuid.UUID) (*model.Posting, error) {
	return s.postings.GetByID(ctx, id)
}

func (s *postingService) UpdateStatus(ctx context.Context, userID, postingID uuid.UUID, target model.Status) (*model.Posting, error) {
	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil || profile.ID != posting.StudioID {
		return nil, model.ErrNotPostingOwner
	}

	changed, err := posting.Transition(target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return posting, nil
	}

	if err := s.postings.Update(ctx, posting); err != nil {
		return nil, fmt.Errorf("failed to update posting status: %w", err)
	}

	s.invalidateFeed(ctx)

	log.Info().
		Str("posting_id", posting.ID.String()).
		Str("status", string(posting.Status)).
		Msg("posting status changed")

	return posting, nil
}

func (s *postingService) List(ctx context.Context, filter model.ListFilter) (*model.Page, error) {
	// The public feed never shows retired postings.
	filter.Status = model.StatusOpen
	filter.StudioID = ""

	cacheable := filter.Cursor == "" && filter.Urgent == nil
	key := fmt.Sprintf(feedCacheKey, filter.Kind, filter.Style, filter.Location)

	if cacheable {
		var cached model.Page
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	page, err := s.postings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, page, feedCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache posting feed")
		}
	}

	return page, nil
}

func (s *postingService) ListOwn(ctx context.Context, userID uuid.UUID, filter model.ListFilter) (*model.Page, error) {
	// A job is never filled and a guest spot is never closed, so a
	// filter pairing a kind with a status it cannot hold matches nothing.
	if filter.Kind != "" && filter.Status != "" && !model.ValidTarget(filter.Kind, filter.Status) {
		return &model.Page{Postings: []*model.Posting{}}, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrPostingNotFound
	}

	filter.StudioID = profile.ID.String()
	return s.postings.List(ctx, filter)
}

func (s *postingService) invalidateFeed(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "postings:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate posting feed cache")
	}
}
