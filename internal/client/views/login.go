package views

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/navigation"
	"github.com/storerating/store-rating/internal/core/ports"
	"github.com/storerating/store-rating/internal/core/session"
)

// LoginView exchanges credentials for a session.
type LoginView struct {
	auth     ports.Authenticator
	gate     *session.Gate
	nav      *navigation.Navigator
	accepted []domain.Role
	log      zerolog.Logger
}

// NewLoginView accepts only identities whose role is in accepted.
func NewLoginView(auth ports.Authenticator, gate *session.Gate, nav *navigation.Navigator, accepted []domain.Role, log zerolog.Logger) *LoginView {
	return &LoginView{auth: auth, gate: gate, nav: nav, accepted: accepted, log: log}
}

// Submit logs in and resumes the destination the user was sent away from.
// When only persisting the session fails, the login still holds: the
// decision is returned together with an error wrapping domain.ErrPersistence.
func (v *LoginView) Submit(ctx context.Context, email, password string) (navigation.Decision, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return navigation.Decision{}, invalid("please enter both email and password")
	}

	id, token, err := v.auth.Login(ctx, email, password)
	if err != nil {
		return navigation.Decision{}, fmt.Errorf("login: %w", err)
	}
	if !slices.Contains(v.accepted, id.Role) {
		v.log.Warn().Str("role", string(id.Role)).Msg("login refused for role")
		return navigation.Decision{}, ErrAccessDenied
	}

	err = v.gate.LoginWithToken(ctx, id, token)
	if err != nil && !errors.Is(err, domain.ErrPersistence) {
		return navigation.Decision{}, err
	}
	return v.nav.AfterLogin(), err
}
