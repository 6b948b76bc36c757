package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/listing"
	"github.com/storerating/store-rating/internal/core/ports"
)

// StoreService serves the end-user store listing and rating submission.
type StoreService struct {
	stores    ports.StoreRepository
	ratings   ports.RatingRepository
	scheduler ports.AggregateScheduler
	logger    zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, ratings ports.RatingRepository, scheduler ports.AggregateScheduler, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, scheduler: scheduler, logger: logger}
}

// ListForViewer returns every store matching the filters, annotated with the
// viewer's own rating.
func (s *StoreService) ListForViewer(ctx context.Context, in ports.ListStoresInput) ([]domain.Store, error) {
	all, err := s.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	mine, err := s.ratings.ForUser(ctx, in.ViewerID)
	if err != nil {
		return nil, fmt.Errorf("list viewer ratings: %w", err)
	}

	records := make([]domain.Store, 0, len(all))
	for _, st := range all {
		rec := *st
		rec.UserRating = nil
		if score, ok := mine[st.ID]; ok {
			rec.UserRating = &score
		}
		records = append(records, rec)
	}
	return listing.Filter(records, in.Name, in.Address), nil
}

// Rate records the user's score for a store and queues recomputation of the
// store's overall rating.
func (s *StoreService) Rate(ctx context.Context, in ports.RateStoreInput) error {
	if !domain.ValidScore(in.Score) {
		return domain.ErrInvalidScore
	}
	if _, err := s.stores.FindByID(ctx, in.StoreID); err != nil {
		return err
	}

	rating := &domain.Rating{
		StoreID:   in.StoreID,
		UserID:    in.UserID,
		Score:     in.Score,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		s.logger.Error().Err(err).Str("store_id", in.StoreID).Msg("failed to save rating")
		return fmt.Errorf("rate store: %w", err)
	}

	s.scheduler.Schedule(in.StoreID)
	s.logger.Info().Str("store_id", in.StoreID).Str("user_id", in.UserID).Int("rating", in.Score).Msg("rating submitted")
	return nil
}
