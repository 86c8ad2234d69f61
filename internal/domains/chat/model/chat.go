package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// conversationNamespace seeds the deterministic conversation id.
var conversationNamespace = uuid.MustParse("b2c1a9e4-5b7d-4f7e-9c3a-8d2e6f1a0b4c")

// ConversationID derives the id for a participant pair. The pair is
// sorted first, so both participants derive the same id regardless of
// who opens the conversation. Creation is an upsert on this id, which
// makes GetOrCreate race-free without a lock.
func ConversationID(a, b uuid.UUID) uuid.UUID {
	lo, hi := SortPair(a, b)
	return uuid.NewSHA1(conversationNamespace, []byte(fmt.Sprintf("%s|%s", lo, hi)))
}

// SortPair orders two profile ids by their string form.
func SortPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// Conversation is a two-party message thread between profiles. The
// participant columns are stored sorted (ParticipantA < ParticipantB).
type Conversation struct {
	ID           uuid.UUID `json:"id"`
	ParticipantA uuid.UUID `json:"participant_a"`
	ParticipantB uuid.UUID `json:"participant_b"`

	// Denormalized summary, maintained in the same transaction as
	// every message insert.
	LastMessageAt      *time.Time `json:"last_message_at"`
	LastMessagePreview string     `json:"last_message_preview"`

	UnreadA int `json:"unread_a"`
	UnreadB int `json:"unread_b"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OtherParticipant returns the counterpart of the given profile.
func (c *Conversation) OtherParticipant(profileID uuid.UUID) uuid.UUID {
	if c.ParticipantA == profileID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// HasParticipant reports whether the profile belongs to this thread.
func (c *Conversation) HasParticipant(profileID uuid.UUID) bool {
	return c.ParticipantA == profileID || c.ParticipantB == profileID
}

// UnreadFor returns the unread counter of the given participant.
func (c *Conversation) UnreadFor(profileID uuid.UUID) int {
	if c.ParticipantA == profileID {
		return c.UnreadA
	}
	return c.UnreadB
}

// MessageKind distinguishes free text from structured references.
type MessageKind string

const (
	KindText   MessageKind = "text"
	KindOffer  MessageKind = "offer"
	KindInvite MessageKind = "invite"
)

// Message belongs to a conversation. Offer and invite messages carry
// only the application id; the application record stays the single
// source of truth for its status, which readers join in live.
type Message struct {
	ID             uuid.UUID   `json:"id"`
	ConversationID uuid.UUID   `json:"conversation_id"`
	SenderID       uuid.UUID   `json:"sender_id"` // sender profile
	Kind           MessageKind `json:"kind"`
	Body           string      `json:"body,omitempty"`
	ApplicationID  *uuid.UUID  `json:"application_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ApplicationStatus is joined onto offer/invite messages at read time.
type MessageView struct {
	Message
	ApplicationStatus string `json:"application_status,omitempty"`
}
