package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// SignUpInput carries the fields of a self-service registration.
type SignUpInput struct {
	Name     string
	Email    string
	Address  string
	Password string
}

// ChangePasswordInput carries a password update for the authenticated user.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// AuthService issues and revokes credentials.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string) error
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
}

// TokenRevoker records logged-out token ids until they would have expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
