package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// UserFilter narrows an administrator user listing. Empty fields match all.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    domain.Role
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
