package repository

import (
	"context"

	"github.com/google/uuid"

	"fitlink-backend/internal/domains/chat/model"
)

// ConversationRepository persists conversations and their messages.
type ConversationRepository interface {
	// GetOrCreate upserts the conversation for a participant pair.
	// The deterministic id makes concurrent calls converge on the
	// same row.
	GetOrCreate(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	ListByParticipant(ctx context.Context, profileID uuid.UUID) ([]*model.Conversation, error)

	// SendMessage inserts the message, refreshes the conversation's
	// last-message summary and increments the recipient's unread
	// counter in a single transaction.
	SendMessage(ctx context.Context, msg *model.Message, preview string, recipientID uuid.UUID) error

	// ListMessages pages through a conversation newest first, joining
	// the live application status onto offer and invite messages.
	ListMessages(ctx context.Context, conversationID uuid.UUID, cursor string, limit int) (*model.MessagePage, error)

	// MarkRead zeroes the participant's unread counter.
	MarkRead(ctx context.Context, conversationID, profileID uuid.UUID) error
}
