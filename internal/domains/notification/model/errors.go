package model

import "errors"

// Error codes
const (
	ErrCodeNotificationNotFound = "NTF001"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)
