package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink-backend/internal/domains/posting/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// ============================================
// Fakes
// ============================================

type fakePostingRepo struct {
	byID     map[uuid.UUID]*model.Posting
	listFn   func(filter model.ListFilter) (*model.Page, error)
	lastList model.ListFilter
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{byID: make(map[uuid.UUID]*model.Posting)}
}

func (r *fakePostingRepo) Create(ctx context.Context, p *model.Posting) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Posting, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, model.ErrPostingNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostingRepo) Update(ctx context.Context, p *model.Posting) error {
	if _, ok := r.byID[p.ID]; !ok {
		return model.ErrPostingNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakePostingRepo) List(ctx context.Context, filter model.ListFilter) (*model.Page, error) {
	r.lastList = filter
	if r.listFn != nil {
		return r.listFn(filter)
	}
	return &model.Page{}, nil
}

func (r *fakePostingRepo) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakePostingRepo) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

type fakeProfiles struct {
	byUser map[uuid.UUID]*profilemodel.Profile
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, profilemodel.ErrProfileNotFound
	}
	return p, nil
}

type memoryCache struct {
	entries map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.entries[key] = nil
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error { return nil }

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.deletes = append(c.deletes, pattern)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }

// ============================================
// Fixture
// ============================================

type postingFixture struct {
	svc      PostingService
	repo     *fakePostingRepo
	cache    *memoryCache
	profiles *fakeProfiles

	studioUser uuid.UUID
	studio     *profilemodel.Profile
}

func newPostingFixture(t *testing.T) *postingFixture {
	t.Helper()

	f := &postingFixture{
		repo:       newFakePostingRepo(),
		cache:      newMemoryCache(),
		studioUser: uuid.New(),
	}
	f.studio = &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           f.studioUser,
		UserType:         profilemodel.TypeStudio,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}
	f.profiles = &fakeProfiles{byUser: map[uuid.UUID]*profilemodel.Profile{f.studioUser: f.studio}}
	f.svc = NewPostingService(f.repo, f.profiles, f.cache)
	return f
}

func validCreateRequest(kind model.Kind) *model.CreatePostingRequest {
	return &model.CreatePostingRequest{
		Kind:        kind,
		Title:       "Vinyasa instructor, weekday mornings",
		Description: "Covering the 7am and 9am classes while our lead is on leave.",
		Location:    "Rotterdam",
	}
}

// ============================================
// Tests
// ============================================

func TestCreatePostingOpensByDefault(t *testing.T) {
	f := newPostingFixture(t)

	posting, err := f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	require.NoError(t, err)

	assert.Equal(t, model.StatusOpen, posting.Status)
	assert.Equal(t, f.studio.ID, posting.StudioID)
	assert.Contains(t, f.cache.deletes, "postings:*")
}

func TestCreatePostingRequiresEligibleStudio(t *testing.T) {
	f := newPostingFixture(t)

	instructorUser := uuid.New()
	f.profiles.byUser[instructorUser] = &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           instructorUser,
		UserType:         profilemodel.TypeInstructor,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}

	_, err := f.svc.Create(context.Background(), instructorUser, validCreateRequest(model.KindJob))
	assert.ErrorIs(t, err, model.ErrStudioNotEligible)

	f.studio.ProfileCompleted = false
	_, err = f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	assert.ErrorIs(t, err, model.ErrStudioNotEligible)
}

func TestUpdateStatusOwnerOnly(t *testing.T) {
	f := newPostingFixture(t)

	posting, err := f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	require.NoError(t, err)

	otherUser := uuid.New()
	f.profiles.byUser[otherUser] = &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           otherUser,
		UserType:         profilemodel.TypeStudio,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}

	_, err = f.svc.UpdateStatus(context.Background(), otherUser, posting.ID, model.StatusClosed)
	assert.ErrorIs(t, err, model.ErrNotPostingOwner)
}

func TestUpdateStatusCloseIsIdempotent(t *testing.T) {
	f := newPostingFixture(t)

	posting, err := f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	require.NoError(t, err)

	closed, err := f.svc.UpdateStatus(context.Background(), f.studioUser, posting.ID, model.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, closed.Status)

	// Closing twice is a no-op, not an error.
	again, err := f.svc.UpdateStatus(context.Background(), f.studioUser, posting.ID, model.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, again.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	f := newPostingFixture(t)

	posting, err := f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	require.NoError(t, err)

	// Jobs close, they are never "filled".
	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, posting.ID, model.StatusFilled)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestListForcesPublicView(t *testing.T) {
	f := newPostingFixture(t)

	_, err := f.svc.List(context.Background(), model.ListFilter{
		Status:   model.StatusClosed, // ignored
		StudioID: uuid.NewString(),   // ignored
		Kind:     model.KindGuestSpot,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusOpen, f.repo.lastList.Status)
	assert.Empty(t, f.repo.lastList.StudioID)
	assert.Equal(t, model.KindGuestSpot, f.repo.lastList.Kind)
}

func TestListCachesFirstPageOnly(t *testing.T) {
	f := newPostingFixture(t)

	_, err := f.svc.List(context.Background(), model.ListFilter{Kind: model.KindJob})
	require.NoError(t, err)
	assert.Len(t, f.cache.entries, 1)

	// Cursored pages bypass the cache.
	_, err = f.svc.List(context.Background(), model.ListFilter{Kind: model.KindJob, Cursor: "opaque"})
	require.NoError(t, err)
	assert.Len(t, f.cache.entries, 1)
}

func TestListOwnScopesToCaller(t *testing.T) {
	f := newPostingFixture(t)

	_, err := f.svc.ListOwn(context.Background(), f.studioUser, model.ListFilter{Status: model.StatusClosed})
	require.NoError(t, err)

	assert.Equal(t, f.studio.ID.String(), f.repo.lastList.StudioID)
	assert.Equal(t, model.StatusClosed, f.repo.lastList.Status)
}

func TestListOwnImpossibleFilterMatchesNothing(t *testing.T) {
	f := newPostingFixture(t)

	_, err := f.svc.Create(context.Background(), f.studioUser, validCreateRequest(model.KindJob))
	require.NoError(t, err)

	// No job is ever "filled", so the query never reaches the repository.
	page, err := f.svc.ListOwn(context.Background(), f.studioUser, model.ListFilter{
		Kind:   model.KindJob,
		Status: model.StatusFilled,
	})
	require.NoError(t, err)

	assert.Empty(t, page.Postings)
	assert.Empty(t, f.repo.lastList.StudioID)
}
