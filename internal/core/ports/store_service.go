package ports

import (
	"context"

	"github.com/storerating/store-rating/internal/core/domain"
)

// ListStoresInput carries the viewer and the optional substring filters.
type ListStoresInput struct {
	ViewerID string
	Name     string
	Address  string
}

// RateStoreInput is a single rating submission.
type RateStoreInput struct {
	StoreID string
	UserID  string
	Score   int
}

// StoreService defines the end-user store operations.
type StoreService interface {
	ListForViewer(ctx context.Context, in ListStoresInput) ([]domain.Store, error)
	Rate(ctx context.Context, in RateStoreInput) error
}

// AggregateScheduler queues recomputation of a store's overall rating.
type AggregateScheduler interface {
	Schedule(storeID string)
}
