package model

import (
	"time"

	"github.com/google/uuid"
)

// ================================================
// NOTIFICATION ENTITY
// ================================================

// Notification is an in-app notification. Rows are written by the
// worker's task handlers, never directly on the request path.
type Notification struct {
	ID      uuid.UUID              `json:"id"`
	UserID  uuid.UUID              `json:"user_id"`
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
	IsRead  bool                   `json:"is_read"`
	ReadAt  *time.Time             `json:"read_at,omitempty"`

	// Optional pointer back to the triggering record.
	ReferenceType *string    `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID `json:"reference_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification types constants
const (
	NotificationTypeModerationDecision = "moderation_decision"
	NotificationTypeApplicationStatus  = "application_status"
	NotificationTypeMessageReceived    = "message_received"
)

// Reference types
const (
	ReferenceProfile      = "profile"
	ReferenceApplication  = "application"
	ReferenceConversation = "conversation"
)
