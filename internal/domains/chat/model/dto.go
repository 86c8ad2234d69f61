package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// OpenConversationRequest opens (or returns) the thread with another
// profile.
type OpenConversationRequest struct {
	ParticipantID string `json:"participant_id"` // the other profile
}

func (r OpenConversationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParticipantID,
			validation.Required.Error("participant_id is required"),
			is.UUIDv4,
		),
	)
}

// SendMessageRequest posts a message into a conversation.
type SendMessageRequest struct {
	Kind          MessageKind `json:"kind"`
	Body          string      `json:"body"`
	ApplicationID string      `json:"application_id"`
}

func (r SendMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(KindText, KindOffer, KindInvite).Error("kind must be text, offer or invite"),
		),
		validation.Field(&r.Body, validation.Length(0, 4000)),
	)
}

// MessagePage is one page of messages, newest first, plus the cursor
// for the next page.
type MessagePage struct {
	Messages   []*MessageView `json:"messages"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
