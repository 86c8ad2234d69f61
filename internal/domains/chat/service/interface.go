package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	appModel "fitlink-backend/internal/domains/application/model"
	"fitlink-backend/internal/domains/chat/model"
	profilemodel "fitlink-backend/internal/domains/profile/model"
)

// TaskEnqueuer is the slice of the asynq client the service needs.
// Satisfied by *asynq.Client; faked in tests.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ProfileGetter resolves profiles by owner or by id. Satisfied by the
// profile repository.
type ProfileGetter interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*profilemodel.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*profilemodel.Profile, error)
}

// ApplicationGetter resolves the application referenced by an offer or
// invite message. Satisfied by the application repository.
type ApplicationGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appModel.Application, error)
}

type ChatService interface {
	// OpenConversation returns the thread between the caller and the
	// given profile, creating it on first contact.
	OpenConversation(ctx context.Context, userID uuid.UUID, req *model.OpenConversationRequest) (*model.Conversation, error)

	// ListConversations returns the caller's threads, most recent
	// activity first.
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)

	// SendMessage posts into a conversation the caller participates in.
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, req *model.SendMessageRequest) (*model.Message, error)

	// ListMessages pages a conversation's history, newest first.
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID, cursor string, limit int) (*model.MessagePage, error)

	// MarkRead zeroes the caller's unread counter.
	MarkRead(ctx context.Context, userID, conversationID uuid.UUID) error
}
