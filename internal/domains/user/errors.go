package user

import "errors"

// Error codes
const (
	ErrCodeEmailAlreadyExists = "USR001"
	ErrCodeInvalidCredentials = "USR002"
	ErrCodeUserInactive       = "USR003"
	ErrCodeUserNotFound       = "USR004"
	ErrCodeInvalidUserType    = "USR005"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserType    = errors.New("user type must be instructor or studio")
)
