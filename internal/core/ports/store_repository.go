package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// StoreRepository defines persistence operations for stores.
// Stores are returned ordered by name.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
	Count(ctx context.Context) (int64, error)
	// SetOverallRating stores the recomputed average; nil clears it.
	SetOverallRating(ctx context.Context, id string, avg *float64) error
}

// RatingRepository handles rating persistence.
type RatingRepository interface {
	// Upsert creates or replaces the rating for (StoreID, UserID).
	Upsert(ctx context.Context, rating *domain.Rating) error
	// ForUser returns the user's scores keyed by store id.
	ForUser(ctx context.Context, userID string) (map[string]int, error)
	// Average returns the mean score of a store, or nil if it has no ratings.
	Average(ctx context.Context, storeID string) (*float64, error)
	List(ctx context.Context) ([]*domain.Rating, error)
	Count(ctx context.Context) (int64, error)
}
