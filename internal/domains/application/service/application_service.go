package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/application/model"
	"fitlink-backend/internal/domains/application/repository"
	notifModel "fitlink-backend/internal/domains/notification/model"
	postingModel "fitlink-backend/internal/domains/posting/model"
	postingRepo "fitlink-backend/internal/domains/posting/repository"
	profilemodel "fitlink-backend/internal/domains/profile/model"
	"fitlink-backend/internal/shared"
	"fitlink-backend/internal/shared/utils"
)

type applicationService struct {
	applications repository.ApplicationRepository
	postings     postingRepo.PostingRepository
	profiles     ProfileGetter
	tasks        TaskEnqueuer
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	postings postingRepo.PostingRepository,
	profiles ProfileGetter,
	tasks TaskEnqueuer,
) ApplicationService {
	return &applicationService{
		applications: applications,
		postings:     postings,
		profiles:     profiles,
		tasks:        tasks,
	}
}

func (s *applicationService) Apply(ctx context.Context, userID uuid.UUID, req *model.ApplyRequest) (*model.Application, error) {
	applicant, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrApplicantNotEligible
	}
	if applicant.UserType != profilemodel.TypeInstructor || !applicant.CanParticipate() {
		return nil, model.ErrApplicantNotEligible
	}

	posting, err := s.postings.GetByID(ctx, utils.ParseStringToUUID(req.PostingID))
	if err != nil {
		return nil, err
	}
	if !posting.IsOpen() {
		return nil, model.ErrPostingNotOpen
	}

	app, err := s.create(ctx, posting, applicant.ID, model.InitiatorApply, req.Message, req.ProposedRate)
	if err != nil {
		return nil, err
	}

	if err := s.postings.IncrementApplicationCount(ctx, posting.ID); err != nil {
		log.Warn().Err(err).
			Str("posting_id", posting.ID.String()).
			Msg("failed to increment application count")
	}

	s.notifyStatus(ctx, app, posting, posting.StudioID)

	return app, nil
}

func (s *applicationService) Invite(ctx context.Context, userID uuid.UUID, req *model.InviteRequest) (*model.Application, error) {
	studio, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrNotParticipant
	}

	posting, err := s.postings.GetByID(ctx, utils.ParseStringToUUID(req.PostingID))
	if err != nil {
		return nil, err
	}
	if posting.StudioID != studio.ID {
		return nil, model.ErrNotParticipant
	}
	if !posting.IsOpen() {
		return nil, model.ErrPostingNotOpen
	}

	instructor, err := s.profiles.GetByID(ctx, utils.ParseStringToUUID(req.InstructorID))
	if err != nil {
		return nil, model.ErrApplicantNotEligible
	}
	if instructor.UserType != profilemodel.TypeInstructor || !instructor.CanParticipate() {
		return nil, model.ErrApplicantNotEligible
	}

	app, err := s.create(ctx, posting, instructor.ID, model.InitiatorInvite, req.Message, req.ProposedRate)
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, app, posting, instructor.ID)

	return app, nil
}

func (s *applicationService) create(ctx context.Context, posting *postingModel.Posting, applicantID uuid.UUID, initiator model.Initiator, message string, proposedRate *float64) (*model.Application, error) {
	status, err := model.EntryStatus(initiator)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app := &model.Application{
		ID:           uuid.New(),
		PostingID:    posting.ID,
		ApplicantID:  applicantID,
		StudioID:     posting.StudioID,
		Initiator:    initiator,
		Status:       status,
		Message:      message,
		ProposedRate: utils.ParseFloatToDecimal(proposedRate),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("posting_id", posting.ID.String()).
		Str("initiator", string(initiator)).
		Msg("application created")

	return app, nil
}

func (s *applicationService) GetByID(ctx context.Context, userID, applicationID uuid.UUID) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if _, err := s.participantRole(ctx, userID, app); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, applicationID uuid.UUID, target model.Status) (*model.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	role, err := s.participantRole(ctx, userID, app)
	if err != nil {
		return nil, err
	}
	if !roleMayRequest(role, app.Status, target) {
		return nil, model.ErrNotParticipant
	}

	if err := app.Transition(target); err != nil {
		return nil, err
	}

	if err := s.applications.UpdateStatus(ctx, app.ID, app.Status); err != nil {
		return nil, err
	}

	posting, err := s.postings.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}

	// An accepted guest spot fills its posting.
	if target == model.StatusAccepted && posting.Kind == postingModel.KindGuestSpot {
		if changed, err := posting.Transition(postingModel.StatusFilled); err == nil && changed {
			if err := s.postings.Update(ctx, posting); err != nil {
				log.Warn().Err(err).
					Str("posting_id", posting.ID.String()).
					Msg("failed to fill posting after accepted application")
			}
		}
	}

	// Notify the party that did not act.
	recipient := app.ApplicantID
	if role == roleApplicant {
		recipient = app.StudioID
	}
	s.notifyStatus(ctx, app, posting, recipient)

	log.Info().
		Str("application_id", app.ID.String()).
		Str("status", string(app.Status)).
		Msg("application status changed")

	return app, nil
}

func (s *applicationService) ListByPosting(ctx context.Context, userID, postingID uuid.UUID, statuses []model.Status) ([]*model.Application, error) {
	posting, err := s.postings.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}

	owner, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil || owner.ID != posting.StudioID {
		return nil, model.ErrNotParticipant
	}

	return s.applications.ListByPosting(ctx, postingID, statuses)
}

func (s *applicationService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Application, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrApplicationNotFound
	}

	return s.applications.ListByApplicant(ctx, profile.ID)
}

type participantRole string

const (
	roleApplicant participantRole = "applicant"
	roleStudio    participantRole = "studio"
)

func (s *applicationService) participantRole(ctx context.Context, userID uuid.UUID, app *model.Application) (participantRole, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", model.ErrNotParticipant
	}

	switch profile.ID {
	case app.ApplicantID:
		return roleApplicant, nil
	case app.StudioID:
		return roleStudio, nil
	default:
		return "", model.ErrNotParticipant
	}
}

// roleMayRequest gates which side may request a given target status.
// The transition table still decides whether the move itself is legal.
func roleMayRequest(role participantRole, current, target model.Status) bool {
	switch role {
	case roleStudio:
		switch target {
		case model.StatusShortlisted, model.StatusOffered, model.StatusAccepted, model.StatusRejected:
			return true
		}
	case roleApplicant:
		switch target {
		case model.StatusWithdrawn:
			return true
		case model.StatusAccepted, model.StatusRejected:
			// Applicants only decide on what was extended to them.
			return current == model.StatusInvited || current == model.StatusOffered
		}
	}
	return false
}

func (s *applicationService) notifyStatus(ctx context.Context, app *model.Application, posting *postingModel.Posting, recipientProfileID uuid.UUID) {
	recipient, err := s.profiles.GetByID(ctx, recipientProfileID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve notification recipient")
		return
	}

	payload, err := json.Marshal(notifModel.ApplicationStatusPayload{
		ApplicationID: app.ID,
		PostingID:     posting.ID,
		RecipientID:   recipient.UserID,
		PostingTitle:  posting.Title,
		NewStatus:     string(app.Status),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal application status payload")
		return
	}

	task := asynq.NewTask(shared.TypeApplicationStatus, payload)
	if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueNotification), asynq.MaxRetry(3)); err != nil {
		log.Warn().Err(err).
			Str("application_id", app.ID.String()).
			Msg("failed to enqueue application status notification")
	}
}
