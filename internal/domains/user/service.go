package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the user business logic contract.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// GetProfile returns the user plus live books_listed /
	// books_received counters.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)

	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error)
}
