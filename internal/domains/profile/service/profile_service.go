package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/domains/profile/repository"
	"fitlink-backend/internal/shared/utils"
	pkgcache "fitlink-backend/pkg/cache"
)

// ImageStore is the slice of object storage the profile pipeline needs.
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageProcessor validates and resizes inline images before upload.
type ImageProcessor interface {
	ValidateImage(data []byte) error
	ProcessAvatar(data []byte) ([]byte, error)
	ProcessGalleryImage(data []byte) ([]byte, error)
}

const (
	directoryCacheKey = "directory:%s:%s:%s" // userType:style:location (first page only)
	directoryCacheTTL = 2 * time.Minute
)

type profileService struct {
	repo      repository.ProfileRepository
	storage   ImageStore
	processor ImageProcessor
	cache     pkgcache.Cache
}

func NewProfileService(
	repo repository.ProfileRepository,
	storage ImageStore,
	processor ImageProcessor,
	cache pkgcache.Cache,
) ProfileService {
	return &profileService{
		repo:      repo,
		storage:   storage,
		processor: processor,
		cache:     cache,
	}
}

// ========================================
// DRAFT PIPELINE
// ========================================

func (s *profileService) CreateDraft(ctx context.Context, userID uuid.UUID, userType, email, fullName string) error {
	if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
		return nil // already exists
	} else if !errors.Is(err, model.ErrProfileNotFound) {
		return fmt.Errorf("check existing profile: %w", err)
	}

	now := time.Now()
	p := &model.Profile{
		ID:        uuid.New(),
		UserID:    userID,
		UserType:  userType,
		Email:     email,
		Handle:    s.uniqueHandle(fullName),
		FullName:  fullName,
		Status:    model.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create draft profile: %w", err)
	}
	return nil
}

func (s *profileService) SaveDraft(ctx context.Context, userID uuid.UUID, req model.SaveProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.StatusArchived {
		return nil, model.ErrProfileArchived
	}

	s.applyFields(p, req)

	// Draft saves may also carry inline images; they are uploaded so
	// the draft preview works, same as on submit.
	if err := s.uploadInlineImages(ctx, p, req.Images); err != nil {
		return nil, err
	}

	// Any edit sends the profile back through moderation.
	p.Status = model.StatusDraft
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.invalidateDirectory(ctx)
	return p, nil
}

// ========================================
// SUBMISSION
// ========================================

func (s *profileService) Submit(ctx context.Context, userID uuid.UUID, req model.SaveProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.StatusArchived {
		return nil, model.ErrProfileArchived
	}

	s.applyFields(p, req)

	// 1. UPLOAD INLINE IMAGES FIRST
	// Embedded image data must never be persisted in the document;
	// submissions carry URLs only.
	if err := s.uploadInlineImages(ctx, p, req.Images); err != nil {
		return nil, err
	}

	// 2. REQUIRED-FIELD CHECKS (ordered, first failure wins)
	if err := p.ValidateForSubmission(); err != nil {
		return nil, err
	}

	// 3. TRANSITION TO SUBMITTED
	// Re-submitting an already-submitted profile simply overwrites
	// fields and refreshes the timestamp.
	now := time.Now()
	p.Status = model.StatusSubmitted
	p.SubmittedAt = &now
	p.ProfileCompleted = true
	p.RejectionReason = nil
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("submit profile: %w", err)
	}

	s.invalidateDirectory(ctx)
	return p, nil
}

// ========================================
// READS
// ========================================

func (s *profileService) GetOwn(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *profileService) GetPublic(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPubliclyVisible() {
		// Unverified profiles must not leak through public lookups.
		return nil, model.ErrProfileNotFound
	}
	return p, nil
}

func (s *profileService) GetPublicByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	p, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !p.IsPubliclyVisible() {
		return nil, model.ErrProfileNotFound
	}
	return p, nil
}

func (s *profileService) Directory(ctx context.Context, filter model.DirectoryFilter) (*model.DirectoryPage, error) {
	cacheable := filter.Cursor == ""
	key := fmt.Sprintf(directoryCacheKey, filter.UserType, filter.Style, filter.Location)

	if cacheable {
		var cached model.DirectoryPage
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	page, err := s.repo.Directory(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, page, directoryCacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache directory page")
		}
	}

	return page, nil
}

func (s *profileService) Archive(ctx context.Context, userID uuid.UUID) error {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	p.Status = model.StatusArchived
	p.ProfileCompleted = false
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return fmt.Errorf("archive profile: %w", err)
	}

	s.invalidateDirectory(ctx)
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *profileService) applyFields(p *model.Profile, req model.SaveProfileRequest) {
	p.FullName = req.FullName
	p.Headline = req.Headline
	p.Bio = req.Bio
	p.Location = req.Location
	p.Styles = req.Styles
	p.Certifications = req.Certifications
	p.Experience = req.Experience
	p.Availability = req.Availability
	p.HourlyRate = utils.ParseFloatToDecimal(req.HourlyRate)
}

// uploadInlineImages decodes embedded base64 images, resizes them, and
// replaces them with durable object-storage URLs on the profile.
func (s *profileService) uploadInlineImages(ctx context.Context, p *model.Profile, images []model.InlineImage) error {
	galleryIdx := len(p.GalleryURLs)

	for _, img := range images {
		if err := img.Validate(); err != nil {
			return err
		}

		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 image data", model.ErrProfileIncomplete)
		}
		if err := s.processor.ValidateImage(data); err != nil {
			return fmt.Errorf("invalid image: %w", err)
		}

		switch img.Kind {
		case "avatar":
			processed, err := s.processor.ProcessAvatar(data)
			if err != nil {
				return fmt.Errorf("process avatar: %w", err)
			}
			url, err := s.storage.Upload(ctx, fmt.Sprintf("profiles/%s/avatar.jpg", p.ID), processed, "image/jpeg")
			if err != nil {
				return fmt.Errorf("upload avatar: %w", err)
			}
			p.AvatarURL = &url

		case "gallery":
			processed, err := s.processor.ProcessGalleryImage(data)
			if err != nil {
				return fmt.Errorf("process gallery image: %w", err)
			}
			url, err := s.storage.Upload(ctx, fmt.Sprintf("profiles/%s/gallery_%d.jpg", p.ID, galleryIdx), processed, "image/jpeg")
			if err != nil {
				return fmt.Errorf("upload gallery image: %w", err)
			}
			p.GalleryURLs = append(p.GalleryURLs, url)
			galleryIdx++
		}
	}

	return nil
}

// uniqueHandle derives a slug from the name, suffixed with a short
// random fragment so collisions between same-named users are unlikely.
func (s *profileService) uniqueHandle(fullName string) string {
	slug := utils.Slugify(fullName)
	if slug == "" {
		slug = "member"
	}
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}

func (s *profileService) invalidateDirectory(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "directory:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate directory cache")
	}
}
