package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/ports"
)

// AggregateService recomputes a store's overall rating from its ratings.
type AggregateService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	log     zerolog.Logger
}

func NewAggregateService(stores ports.StoreRepository, ratings ports.RatingRepository, log zerolog.Logger) *AggregateService {
	return &AggregateService{stores: stores, ratings: ratings, log: log}
}

// Recompute sets the store's overall rating to the mean of its ratings.
func (s *AggregateService) Recompute(ctx context.Context, storeID string) error {
	avg, err := s.ratings.Average(ctx, storeID)
	if err != nil {
		return fmt.Errorf("recompute %s: average: %w", storeID, err)
	}
	if err := s.stores.SetOverallRating(ctx, storeID, avg); err != nil {
		return fmt.Errorf("recompute %s: update store: %w", storeID, err)
	}

	ev := s.log.Debug().Str("store_id", storeID)
	if avg != nil {
		ev = ev.Float64("overall_rating", *avg)
	}
	ev.Msg("overall rating recomputed")
	return nil
}
