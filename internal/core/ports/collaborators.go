package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// The interfaces below are the remote collaborators a client talks to.
// Every failure is an error; callers surface it as a user-visible message.

// Authenticator exchanges credentials for an identity and its token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Identity, string, error)
}

// Registrar creates an end-user account.
type Registrar interface {
	SignUp(ctx context.Context, in SignUpInput) error
}

// StoreFetcher returns the stores visible to the session's identity, each
// annotated with that identity's own rating.
type StoreFetcher interface {
	FetchStores(ctx context.Context) ([]domain.Store, error)
}

// RatingSubmitter records the session identity's rating for a store.
type RatingSubmitter interface {
	SubmitRating(ctx context.Context, storeID string, score int) error
}

// PasswordChanger updates the session identity's password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, current, next string) error
}

// AdminConsole is the remote surface of the administrator dashboard.
type AdminConsole interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, error)
	AddUser(ctx context.Context, in AddUserInput) (domain.User, error)
	ListStores(ctx context.Context, filter StoreFilter) ([]domain.Store, error)
	AddStore(ctx context.Context, in AddStoreInput) (domain.Store, error)
	ListRatings(ctx context.Context) ([]domain.Rating, error)
}
