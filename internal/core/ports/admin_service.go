package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// AddUserInput carries an administrator-created account.
type AddUserInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	Role     domain.Role
}

// AddStoreInput carries an administrator-created store.
type AddStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// StoreFilter narrows an administrator store listing.
type StoreFilter struct {
	Name    string
	Address string
}

// AdminService defines the system-administrator dashboard operations.
type AdminService interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	AddUser(ctx context.Context, in AddUserInput) (*domain.User, error)
	ListStores(ctx context.Context, filter StoreFilter) ([]domain.Store, error)
	AddStore(ctx context.Context, in AddStoreInput) (*domain.Store, error)
	ListRatings(ctx context.Context) ([]*domain.Rating, error)
}
