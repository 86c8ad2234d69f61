package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"fitlink-backend/internal/domains/chat/model"
	"fitlink-backend/internal/domains/chat/repository"
	notifModel "fitlink-backend/internal/domains/notification/model"
	"fitlink-backend/internal/shared"
	"fitlink-backend/internal/shared/utils"
)

const previewLength = 120

type chatService struct {
	conversations repository.ConversationRepository
	profiles      ProfileGetter
	applications  ApplicationGetter
	tasks         TaskEnqueuer
}

func NewChatService(
	conversations repository.ConversationRepository,
	profiles ProfileGetter,
	applications ApplicationGetter,
	tasks TaskEnqueuer,
) ChatService {
	return &chatService{
		conversations: conversations,
		profiles:      profiles,
		applications:  applications,
		tasks:         tasks,
	}
}

func (s *chatService) OpenConversation(ctx context.Context, userID uuid.UUID, req *model.OpenConversationRequest) (*model.Conversation, error) {
	caller, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrNotParticipant
	}

	otherID := utils.ParseStringToUUID(req.ParticipantID)
	if otherID == caller.ID {
		return nil, model.ErrSelfConversation
	}

	other, err := s.profiles.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}

	return s.conversations.GetOrCreate(ctx, caller.ID, other.ID)
}

func (s *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	caller, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, model.ErrNotParticipant
	}

	return s.conversations.ListByParticipant(ctx, caller.ID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *model.SendMessageRequest) (*model.Message, error) {
	caller, conversation, err := s.requireParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		SenderID:       caller.ID,
		Kind:           req.Kind,
		Body:           strings.TrimSpace(req.Body),
		CreatedAt:      time.Now(),
	}

	switch req.Kind {
	case model.KindText:
		if msg.Body == "" {
			return nil, model.ErrEmptyMessage
		}
	case model.KindOffer, model.KindInvite:
		appID := utils.ParseStringToUUID(req.ApplicationID)
		if appID == uuid.Nil {
			return nil, model.ErrApplicationRequired
		}
		app, err := s.applications.GetByID(ctx, appID)
		if err != nil {
			return nil, err
		}
		// The referenced application must belong to this pair.
		if !conversation.HasParticipant(app.ApplicantID) || !conversation.HasParticipant(app.StudioID) {
			return nil, model.ErrNotParticipant
		}
		msg.ApplicationID = &app.ID
	}

	recipientID := conversation.OtherParticipant(caller.ID)
	if err := s.conversations.SendMessage(ctx, msg, preview(msg), recipientID); err != nil {
		return nil, err
	}

	s.notifyRecipient(ctx, msg, recipientID)

	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID uuid.UUID, cursor string, limit int) (*model.MessagePage, error) {
	if _, _, err := s.requireParticipant(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	return s.conversations.ListMessages(ctx, conversationID, cursor, limit)
}

func (s *chatService) MarkRead(ctx context.Context, userID, conversationID uuid.UUID) error {
	caller, _, err := s.requireParticipant(ctx, userID, conversationID)
	if err != nil {
		return err
	}

	return s.conversations.MarkRead(ctx, conversationID, caller.ID)
}

func (s *chatService) requireParticipant(ctx context.Context, userID, conversationID uuid.UUID) (caller *profileRef, conversation *model.Conversation, err error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, model.ErrNotParticipant
	}

	conversation, err = s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, nil, err
	}
	if !conversation.HasParticipant(profile.ID) {
		return nil, nil, model.ErrNotParticipant
	}

	return &profileRef{ID: profile.ID, UserID: profile.UserID}, conversation, nil
}

type profileRef struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func preview(msg *model.Message) string {
	switch msg.Kind {
	case model.KindOffer:
		return "[offer]"
	case model.KindInvite:
		return "[invite]"
	}
	// Truncate on a rune boundary so multi-byte bodies stay valid UTF-8.
	runes := []rune(msg.Body)
	if len(runes) > previewLength {
		return string(runes[:previewLength])
	}
	return msg.Body
}

func (s *chatService) notifyRecipient(ctx context.Context, msg *model.Message, recipientProfileID uuid.UUID) {
	recipient, err := s.profiles.GetByID(ctx, recipientProfileID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve message recipient")
		return
	}

	payload, err := json.Marshal(notifModel.MessageReceivedPayload{
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
		RecipientID:    recipient.UserID,
		SenderID:       msg.SenderID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal message received payload")
		return
	}

	task := asynq.NewTask(shared.TypeMessageReceived, payload)
	if _, err := s.tasks.Enqueue(task, asynq.Queue(shared.QueueNotification), asynq.MaxRetry(3)); err != nil {
		log.Warn().Err(err).
			Str("message_id", msg.ID.String()).
			Msg("failed to enqueue message notification")
	}
}
