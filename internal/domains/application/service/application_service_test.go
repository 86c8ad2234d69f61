package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink-backend/internal/domains/application/model"
	postingModel "fitlink-backend/internal/domains/posting/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// ============================================
// Fakes
// ============================================

type fakeApplicationRepo struct {
	byID map[uuid.UUID]*model.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{byID: make(map[uuid.UUID]*model.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	for _, existing := range r.byID {
		if existing.ApplicantID == a.ApplicantID && existing.PostingID == a.PostingID {
			return model.ErrDuplicateApplication
		}
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, model.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	a, ok := r.byID[id]
	if !ok {
		return model.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (r *fakeApplicationRepo) ListByPosting(ctx context.Context, postingID uuid.UUID, statuses []model.Status) ([]*model.Application, error) {
	var out []*model.Application
	for _, a := range r.byID {
		if a.PostingID != postingID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if a.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*model.Application, error) {
	var out []*model.Application
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakePostingRepo struct {
	byID       map[uuid.UUID]*postingModel.Posting
	increments int
}

func newFakePostingRepo() *fakePostingRepo {
	return &fakePostingRepo{byID: make(map[uuid.UUID]*postingModel.Posting)}
}

func (r *fakePostingRepo) Create(ctx context.Context, p *postingModel.Posting) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakePostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*postingModel.Posting, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, postingModel.ErrPostingNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostingRepo) Update(ctx context.Context, p *postingModel.Posting) error {
	if _, ok := r.byID[p.ID]; !ok {
		return postingModel.ErrPostingNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakePostingRepo) List(ctx context.Context, filter postingModel.ListFilter) (*postingModel.Page, error) {
	return &postingModel.Page{}, nil
}

func (r *fakePostingRepo) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return postingModel.ErrPostingNotFound
	}
	p.ApplicationCount++
	r.increments++
	return nil
}

func (r *fakePostingRepo) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

type fakeProfiles struct {
	byUser map[uuid.UUID]*profilemodel.Profile
	byID   map[uuid.UUID]*profilemodel.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		byUser: make(map[uuid.UUID]*profilemodel.Profile),
		byID:   make(map[uuid.UUID]*profilemodel.Profile),
	}
}

func (f *fakeProfiles) add(p *profilemodel.Profile) {
	f.byUser[p.UserID] = p
	f.byID[p.ID] = p
}

func (f *fakeProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, profilemodel.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetByID(ctx context.Context, id uuid.UUID) (*profilemodel.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, profilemodel.ErrProfileNotFound
	}
	return p, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: uuid.NewString(), Type: task.Type()}, nil
}

// ============================================
// Fixture
// ============================================

type fixture struct {
	svc      ApplicationService
	apps     *fakeApplicationRepo
	postings *fakePostingRepo
	profiles *fakeProfiles
	tasks    *fakeEnqueuer

	instructorUser uuid.UUID
	studioUser     uuid.UUID
	instructor     *profilemodel.Profile
	studio         *profilemodel.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		apps:           newFakeApplicationRepo(),
		postings:       newFakePostingRepo(),
		profiles:       newFakeProfiles(),
		tasks:          &fakeEnqueuer{},
		instructorUser: uuid.New(),
		studioUser:     uuid.New(),
	}

	f.instructor = &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           f.instructorUser,
		UserType:         profilemodel.TypeInstructor,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}
	f.studio = &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           f.studioUser,
		UserType:         profilemodel.TypeStudio,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}
	f.profiles.add(f.instructor)
	f.profiles.add(f.studio)

	f.svc = NewApplicationService(f.apps, f.postings, f.profiles, f.tasks)
	return f
}

func (f *fixture) addPosting(kind postingModel.Kind, status postingModel.Status) *postingModel.Posting {
	p := &postingModel.Posting{
		ID:       uuid.New(),
		StudioID: f.studio.ID,
		Kind:     kind,
		Status:   status,
		Title:    "Morning yoga cover",
	}
	f.postings.byID[p.ID] = p
	return p
}

// ============================================
// Tests
// ============================================

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	rate := 42.50
	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID:    posting.ID.String(),
		Message:      "I can cover mornings.",
		ProposedRate: &rate,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, app.Status)
	assert.Equal(t, model.InitiatorApply, app.Initiator)
	assert.Equal(t, f.instructor.ID, app.ApplicantID)
	assert.Equal(t, f.studio.ID, app.StudioID)

	require.NotNil(t, app.ProposedRate)
	assert.True(t, app.ProposedRate.Equal(decimal.NewFromFloat(42.50)))

	assert.Equal(t, 1, f.postings.increments)
	require.Len(t, f.tasks.tasks, 1)
}

func TestApplyWithoutRate(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)
	assert.Nil(t, app.ProposedRate)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)
	req := &model.ApplyRequest{PostingID: posting.ID.String()}

	_, err := f.svc.Apply(context.Background(), f.instructorUser, req)
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), f.instructorUser, req)
	assert.ErrorIs(t, err, model.ErrDuplicateApplication)
}

func TestApplyRequiresEligibleInstructor(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)
	req := &model.ApplyRequest{PostingID: posting.ID.String()}

	// Studios cannot apply.
	_, err := f.svc.Apply(context.Background(), f.studioUser, req)
	assert.ErrorIs(t, err, model.ErrApplicantNotEligible)

	// An incomplete profile cannot apply.
	f.instructor.ProfileCompleted = false
	_, err = f.svc.Apply(context.Background(), f.instructorUser, req)
	assert.ErrorIs(t, err, model.ErrApplicantNotEligible)

	// Neither can an unverified one.
	f.instructor.ProfileCompleted = true
	f.instructor.Status = profilemodel.StatusSubmitted
	_, err = f.svc.Apply(context.Background(), f.instructorUser, req)
	assert.ErrorIs(t, err, model.ErrApplicantNotEligible)
}

func TestApplyRequiresOpenPosting(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusClosed)

	_, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	assert.ErrorIs(t, err, model.ErrPostingNotOpen)
}

func TestInviteCreatesInvitedApplication(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindGuestSpot, postingModel.StatusOpen)

	rate := 55.0
	app, err := f.svc.Invite(context.Background(), f.studioUser, &model.InviteRequest{
		PostingID:    posting.ID.String(),
		InstructorID: f.instructor.ID.String(),
		Message:      "Saturday slot is yours if you want it.",
		ProposedRate: &rate,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInvited, app.Status)
	assert.Equal(t, model.InitiatorInvite, app.Initiator)

	require.NotNil(t, app.ProposedRate)
	assert.True(t, app.ProposedRate.Equal(decimal.NewFromFloat(55.0)))

	// Invites do not count as inbound applications.
	assert.Equal(t, 0, f.postings.increments)
}

func TestInviteOnlyByPostingOwner(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindGuestSpot, postingModel.StatusOpen)

	_, err := f.svc.Invite(context.Background(), f.instructorUser, &model.InviteRequest{
		PostingID:    posting.ID.String(),
		InstructorID: f.instructor.ID.String(),
	})
	assert.ErrorIs(t, err, model.ErrNotParticipant)
}

// Full lifecycle: studio posts an open job, an instructor applies,
// the studio accepts, and from then on the application is frozen.
func TestLifecycleOpenApplyAccept(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, app.Status)

	accepted, err := f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, accepted.Status)

	// Accepted is terminal: nobody can move it again.
	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusRejected)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(context.Background(), f.instructorUser, app.ID, model.StatusWithdrawn)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	stored, err := f.apps.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, stored.Status)
}

func TestAcceptedGuestSpotFillsPosting(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindGuestSpot, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusAccepted)
	require.NoError(t, err)

	stored, err := f.postings.GetByID(context.Background(), posting.ID)
	require.NoError(t, err)
	assert.Equal(t, postingModel.StatusFilled, stored.Status)
}

func TestAcceptedJobLeavesPostingOpen(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusAccepted)
	require.NoError(t, err)

	stored, err := f.postings.GetByID(context.Background(), posting.ID)
	require.NoError(t, err)
	assert.Equal(t, postingModel.StatusOpen, stored.Status)
}

func TestApplicantSidePermissions(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)

	// Applicants cannot shortlist themselves or accept their own
	// unsolicited application.
	_, err = f.svc.UpdateStatus(context.Background(), f.instructorUser, app.ID, model.StatusShortlisted)
	assert.ErrorIs(t, err, model.ErrNotParticipant)

	_, err = f.svc.UpdateStatus(context.Background(), f.instructorUser, app.ID, model.StatusAccepted)
	assert.ErrorIs(t, err, model.ErrNotParticipant)

	// They can withdraw.
	withdrawn, err := f.svc.UpdateStatus(context.Background(), f.instructorUser, app.ID, model.StatusWithdrawn)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWithdrawn, withdrawn.Status)
}

func TestApplicantMayAcceptOffer(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusOffered)
	require.NoError(t, err)

	accepted, err := f.svc.UpdateStatus(context.Background(), f.instructorUser, app.ID, model.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, accepted.Status)
}

func TestOutsiderCannotTouchApplication(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)

	stranger := &profilemodel.Profile{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		UserType:         profilemodel.TypeInstructor,
		Status:           profilemodel.StatusVerified,
		ProfileCompleted: true,
	}
	f.profiles.add(stranger)

	_, err = f.svc.GetByID(context.Background(), stranger.UserID, app.ID)
	assert.ErrorIs(t, err, model.ErrNotParticipant)

	_, err = f.svc.UpdateStatus(context.Background(), stranger.UserID, app.ID, model.StatusWithdrawn)
	assert.ErrorIs(t, err, model.ErrNotParticipant)
}

func TestStatusChangeNotifiesOtherParty(t *testing.T) {
	f := newFixture(t)
	posting := f.addPosting(postingModel.KindJob, postingModel.StatusOpen)

	app, err := f.svc.Apply(context.Background(), f.instructorUser, &model.ApplyRequest{
		PostingID: posting.ID.String(),
	})
	require.NoError(t, err)
	require.Len(t, f.tasks.tasks, 1) // studio notified of the new application

	_, err = f.svc.UpdateStatus(context.Background(), f.studioUser, app.ID, model.StatusRejected)
	require.NoError(t, err)
	require.Len(t, f.tasks.tasks, 2) // applicant notified of the verdict
}
