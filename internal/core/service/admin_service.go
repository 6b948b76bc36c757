package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/listing"
	"github.com/storerating/store-rating/internal/core/ports"
)

// AdminService implements the system-administrator dashboard.
type AdminService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	log     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, log: log}
}

// Dashboard counts users, stores and ratings concurrently.
func (s *AdminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalStores, err = s.stores.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRatings, err = s.ratings.Count(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AddUser creates an account with any role.
func (s *AdminService) AddUser(ctx context.Context, in ports.AddUserInput) (*domain.User, error) {
	user, err := createUser(ctx, s.users, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user added by administrator")
	return user, nil
}

func (s *AdminService) ListStores(ctx context.Context, filter ports.StoreFilter) ([]domain.Store, error) {
	all, err := s.stores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	records := make([]domain.Store, 0, len(all))
	for _, st := range all {
		records = append(records, *st)
	}
	return listing.Filter(records, filter.Name, filter.Address), nil
}

// AddStore registers a store. A given owner must be an existing Store Owner.
func (s *AdminService) AddStore(ctx context.Context, in ports.AddStoreInput) (*domain.Store, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" || in.Address == "" {
		return nil, fmt.Errorf("%w: store name and address are required", domain.ErrValidation)
	}

	if in.OwnerID != "" {
		owner, err := s.users.FindByID(ctx, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if owner.Role != domain.RoleStoreOwner {
			return nil, fmt.Errorf("%w: owner must have role %q", domain.ErrValidation, domain.RoleStoreOwner)
		}
	}

	store, err := s.stores.Create(ctx, &domain.Store{
		Name:    in.Name,
		Email:   normalizeEmail(in.Email),
		Address: in.Address,
		OwnerID: in.OwnerID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("store_id", store.ID).Msg("store added by administrator")
	return store, nil
}

func (s *AdminService) ListRatings(ctx context.Context) ([]*domain.Rating, error) {
	ratings, err := s.ratings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
