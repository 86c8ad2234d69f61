package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink-backend/internal/domains/profile/model"
)

// ============================================
// Fakes
// ============================================

type fakeRepo struct {
	byID map[uuid.UUID]*model.Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*model.Profile)}
}

func (r *fakeRepo) Create(ctx context.Context, p *model.Profile) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	for _, p := range r.byID {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, model.ErrProfileNotFound
}

func (r *fakeRepo) GetByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	for _, p := range r.byID {
		if p.Handle == handle {
			clone := *p
			return &clone, nil
		}
	}
	return nil, model.ErrProfileNotFound
}

func (r *fakeRepo) Update(ctx context.Context, p *model.Profile) error {
	if _, ok := r.byID[p.ID]; !ok {
		return model.ErrProfileNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeRepo) Directory(ctx context.Context, filter model.DirectoryFilter) (*model.DirectoryPage, error) {
	page := &model.DirectoryPage{}
	for _, p := range r.byID {
		if !p.IsPubliclyVisible() {
			continue
		}
		page.Entries = append(page.Entries, model.DirectoryEntry{
			ID:       p.ID,
			Handle:   p.Handle,
			UserType: p.UserType,
			FullName: p.FullName,
		})
	}
	return page, nil
}

func (r *fakeRepo) ListPendingModeration(ctx context.Context) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeRepo) MarkVerified(ctx context.Context, id, reviewedBy uuid.UUID, at time.Time) error {
	p, ok := r.byID[id]
	if !ok {
		return model.ErrProfileNotFound
	}
	if p.Status != model.StatusSubmitted {
		return model.ErrNotSubmitted
	}
	p.Status = model.StatusVerified
	return nil
}

func (r *fakeRepo) MarkRejected(ctx context.Context, id, reviewedBy uuid.UUID, reason string, at time.Time) error {
	p, ok := r.byID[id]
	if !ok {
		return model.ErrProfileNotFound
	}
	if p.Status != model.StatusSubmitted {
		return model.ErrNotSubmitted
	}
	p.Status = model.StatusRejected
	p.RejectionReason = &reason
	return nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	s.uploads[key] = data
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

type passthroughProcessor struct{}

func (passthroughProcessor) ValidateImage(data []byte) error              { return nil }
func (passthroughProcessor) ProcessAvatar(data []byte) ([]byte, error)    { return data, nil }
func (passthroughProcessor) ProcessGalleryImage(d []byte) ([]byte, error) { return d, nil }

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error        { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                          { return nil }

// ============================================
// Fixture
// ============================================

func newService(t *testing.T) (ProfileService, *fakeRepo, *fakeStorage) {
	t.Helper()
	repo := newFakeRepo()
	storage := &fakeStorage{}
	return NewProfileService(repo, storage, passthroughProcessor{}, noopCache{}), repo, storage
}

func completeRequest() model.SaveProfileRequest {
	return model.SaveProfileRequest{
		FullName:       "Jordan Vega",
		Headline:       "Vinyasa and mobility coach",
		Bio:            strings.Repeat("Teaching flow classes across Rotterdam studios since 2016. ", 2),
		Location:       "Rotterdam",
		Styles:         []string{"yoga", "mobility"},
		Certifications: []string{"RYT-500"},
		Experience: []model.ExperienceEntry{
			{Title: "Lead instructor", Organization: "Flow House", StartYear: 2016},
		},
		Availability: []model.AvailabilitySlot{
			{Day: "monday", Start: "07:00", End: "12:00"},
		},
		Images: []model.InlineImage{
			{Kind: "avatar", Data: base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), ContentType: "image/jpeg"},
		},
	}
}

// ============================================
// Tests
// ============================================

func TestCreateDraftIsIdempotent(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()

	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	assert.Len(t, repo.byID, 1)

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Contains(t, p.Handle, "jordan-vega-")
}

func TestSaveDraftSkipsCompletenessChecks(t *testing.T) {
	svc, _, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	// A nearly empty draft is fine; completeness only matters on submit.
	p, err := svc.SaveDraft(context.Background(), userID, model.SaveProfileRequest{
		FullName: "Jordan Vega",
		Bio:      "wip",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusDraft, p.Status)
	assert.Equal(t, "wip", p.Bio)
	assert.False(t, p.ProfileCompleted)
}

func TestSubmitCompleteProfile(t *testing.T) {
	svc, _, storage := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	p, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)

	assert.Equal(t, model.StatusSubmitted, p.Status)
	assert.True(t, p.ProfileCompleted)
	require.NotNil(t, p.SubmittedAt)

	// The inline avatar became a storage URL; raw bytes stay out of
	// the document.
	require.NotNil(t, p.AvatarURL)
	assert.Contains(t, *p.AvatarURL, "avatar.jpg")
	assert.Len(t, storage.uploads, 1)
}

func TestSubmitIncompleteProfileFailsFast(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	req := completeRequest()
	req.Bio = "too short"

	_, err := svc.Submit(context.Background(), userID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrProfileIncomplete)

	var subErr *model.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "bio", subErr.Field)

	// The failed submission did not change the stored status.
	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, p.Status)
}

func TestResubmitAfterRejectionClearsReason(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	_, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkRejected(context.Background(), p.ID, uuid.New(), "blurry photos", time.Now()))

	resubmitted, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)

	assert.Equal(t, model.StatusSubmitted, resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionReason)
}

func TestGetPublicHidesUnverified(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	submitted, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)

	// Submitted but not yet verified: invisible to the public.
	_, err = svc.GetPublic(context.Background(), submitted.ID)
	assert.ErrorIs(t, err, model.ErrProfileNotFound)

	require.NoError(t, repo.MarkVerified(context.Background(), submitted.ID, uuid.New(), time.Now()))

	p, err := svc.GetPublic(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, p.ID)
}

func TestGetPublicByHandle(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	submitted, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)

	// Same visibility rules as the ID lookup.
	_, err = svc.GetPublicByHandle(context.Background(), submitted.Handle)
	assert.ErrorIs(t, err, model.ErrProfileNotFound)

	require.NoError(t, repo.MarkVerified(context.Background(), submitted.ID, uuid.New(), time.Now()))

	p, err := svc.GetPublicByHandle(context.Background(), submitted.Handle)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, p.ID)

	_, err = svc.GetPublicByHandle(context.Background(), "no-such-handle")
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestArchiveRemovesFromMarketplace(t *testing.T) {
	svc, repo, _ := newService(t)
	userID := uuid.New()
	require.NoError(t, svc.CreateDraft(context.Background(), userID, model.TypeInstructor, "jordan@example.com", "Jordan Vega"))

	submitted, err := svc.Submit(context.Background(), userID, completeRequest())
	require.NoError(t, err)
	require.NoError(t, repo.MarkVerified(context.Background(), submitted.ID, uuid.New(), time.Now()))

	require.NoError(t, svc.Archive(context.Background(), userID))

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, p.Status)
	assert.False(t, p.CanParticipate())

	// Archived profiles refuse further edits.
	_, err = svc.SaveDraft(context.Background(), userID, model.SaveProfileRequest{FullName: "Jordan Vega"})
	assert.ErrorIs(t, err, model.ErrProfileArchived)
}
