package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
)

// Gate is the single authority on whether the current actor is logged in.
// It exists once per client process and is passed explicitly to whatever
// needs authorization state.
//
// Transitions are applied under a lock, so no partial login is observable.
// Two concurrent logins leave the session of whichever ran last.
type Gate struct {
	mu      sync.RWMutex
	session domain.Session
	store   *Store
	log     zerolog.Logger
}

// NewGate returns a Gate whose initial state is whatever store has persisted.
func NewGate(ctx context.Context, store *Store, log zerolog.Logger) *Gate {
	return &Gate{
		session: store.Load(ctx),
		store:   store,
		log:     log,
	}
}

// Login activates id with a freshly generated opaque token.
func (g *Gate) Login(ctx context.Context, id domain.Identity) error {
	return g.LoginWithToken(ctx, id, uuid.NewString())
}

// LoginWithToken activates id and remembers token for outgoing requests.
// It refuses an incomplete identity and leaves the session untouched. A
// persistence failure is returned but the in-memory login still holds.
func (g *Gate) LoginWithToken(ctx context.Context, id domain.Identity, token string) error {
	if !id.Complete() {
		return domain.ErrIncompleteIdentity
	}
	if token == "" {
		token = uuid.NewString()
	}

	next := domain.LoggedIn(id, token)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = next
	if err := g.store.Save(ctx, next); err != nil {
		g.log.Error().Err(err).Str("user_id", id.ID).Msg("login not persisted")
		return err
	}
	g.log.Info().Str("user_id", id.ID).Str("role", string(id.Role)).Msg("user logged in")
	return nil
}

// Logout resets the session. Calling it while logged out is harmless.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	was := g.session.Authenticated
	g.session = domain.LoggedOut()
	if err := g.store.Clear(ctx); err != nil {
		g.log.Error().Err(err).Msg("logout not persisted")
		return err
	}
	if was {
		g.log.Info().Msg("user logged out")
	}
	return nil
}

// IsAuthenticated reports whether a user is logged in.
func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.Authenticated
}

// CurrentIdentity returns the logged-in identity, or false when logged out.
func (g *Gate) CurrentIdentity() (domain.Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.session.Authenticated || g.session.Identity == nil {
		return domain.Identity{}, false
	}
	return *g.session.Identity, true
}

// Token returns the credential of the current session, or "" when logged out.
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.Token
}
