package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines user business logic.
type Service interface {
	// Register creates an account and its draft marketplace profile.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Login authenticates and returns a JWT pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// RefreshToken rotates the token pair using a valid refresh token.
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// GetByID fetches a user account.
	GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}
