package model

import "github.com/google/uuid"

// Payloads for asynq tasks. Producers live in the moderation,
// application, and chat services; consumers in the worker handlers.

// ModerationDecisionPayload notifies a profile owner of a verdict.
type ModerationDecisionPayload struct {
	ProfileID uuid.UUID `json:"profile_id"`
	UserID    uuid.UUID `json:"user_id"`
	Decision  string    `json:"decision"` // verified | rejected
	Reason    string    `json:"reason,omitempty"`
}

// ApplicationStatusPayload notifies the relevant party of a lifecycle
// transition on an application.
type ApplicationStatusPayload struct {
	ApplicationID uuid.UUID `json:"application_id"`
	PostingID     uuid.UUID `json:"posting_id"`
	RecipientID   uuid.UUID `json:"recipient_id"`
	PostingTitle  string    `json:"posting_title"`
	NewStatus     string    `json:"new_status"`
}

// MessageReceivedPayload notifies a conversation participant of a new
// message.
type MessageReceivedPayload struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	MessageID      uuid.UUID `json:"message_id"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	SenderID       uuid.UUID `json:"sender_id"`
}

// CleanupOldNotificationsPayload is the (empty) payload of the
// scheduled cleanup job.
type CleanupOldNotificationsPayload struct{}
