package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/listing"
	"github.com/storerating/store-rating/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStub = errors.New("stub failure")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // keyed by email
	nextID  int
	countFn func() (int64, error)
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[c.Email] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if !listing.Contains(u.Name, f.Name) || !listing.Contains(u.Email, f.Email) || !listing.Contains(u.Address, f.Address) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	if r.countFn != nil {
		return r.countFn()
	}
	return int64(len(r.users)), nil
}

// ---------------------------------------------------------------------------
// Stores and ratings
// ---------------------------------------------------------------------------

type stubStoreRepo struct {
	stores  []*domain.Store
	listErr error
	setAvg  map[string]*float64
}

func newStubStoreRepo(stores ...*domain.Store) *stubStoreRepo {
	return &stubStoreRepo{stores: stores, setAvg: make(map[string]*float64)}
}

func (r *stubStoreRepo) Create(_ context.Context, s *domain.Store) (*domain.Store, error) {
	c := *s
	c.ID = fmt.Sprintf("s%d", len(r.stores)+1)
	r.stores = append(r.stores, &c)
	out := c
	return &out, nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	for _, s := range r.stores {
		if s.ID == id {
			c := *s
			return &c, nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) List(context.Context) ([]*domain.Store, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Store, 0, len(r.stores))
	for _, s := range r.stores {
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubStoreRepo) Count(context.Context) (int64, error) {
	return int64(len(r.stores)), nil
}

func (r *stubStoreRepo) SetOverallRating(_ context.Context, id string, avg *float64) error {
	r.setAvg[id] = avg
	return nil
}

type stubRatingRepo struct {
	ratings   map[string]*domain.Rating // storeID|userID
	upsertErr error
	countErr  error
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[string]*domain.Rating)}
}

func (r *stubRatingRepo) Upsert(_ context.Context, rt *domain.Rating) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	c := *rt
	r.ratings[rt.StoreID+"|"+rt.UserID] = &c
	return nil
}

func (r *stubRatingRepo) ForUser(_ context.Context, userID string) (map[string]int, error) {
	out := make(map[string]int)
	for _, rt := range r.ratings {
		if rt.UserID == userID {
			out[rt.StoreID] = rt.Score
		}
	}
	return out, nil
}

func (r *stubRatingRepo) Average(_ context.Context, storeID string) (*float64, error) {
	var sum, n float64
	for _, rt := range r.ratings {
		if rt.StoreID == storeID {
			sum += float64(rt.Score)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / n
	return &avg, nil
}

func (r *stubRatingRepo) List(context.Context) ([]*domain.Rating, error) {
	out := make([]*domain.Rating, 0, len(r.ratings))
	for _, rt := range r.ratings {
		c := *rt
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubRatingRepo) Count(context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.ratings)), nil
}

type stubScheduler struct {
	mu        sync.Mutex
	scheduled []string
}

func (s *stubScheduler) Schedule(storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, storeID)
}

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.revoked[id], nil
}
