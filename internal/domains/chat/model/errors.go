package model

import "errors"

// Error codes
const (
	ErrCodeConversationNotFound = "CHT001"
	ErrCodeNotParticipant       = "CHT002"
	ErrCodeEmptyMessage         = "CHT003"
	ErrCodeSelfConversation     = "CHT004"
	ErrCodeApplicationRequired  = "CHT005"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant in this conversation")
	ErrEmptyMessage         = errors.New("message body is required")
	ErrSelfConversation     = errors.New("cannot open a conversation with yourself")
	ErrApplicationRequired  = errors.New("offer and invite messages must reference an application")
)
