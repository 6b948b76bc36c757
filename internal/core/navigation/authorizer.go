// Package navigation decides which destinations a client may open and where
// to send it instead.
package navigation

import (
	"path"
	"slices"
	"strings"

	"github.com/storerating/store-rating/internal/core/domain"
)

// AuthState is the read side of the auth gate.
type AuthState interface {
	IsAuthenticated() bool
	CurrentIdentity() (domain.Identity, bool)
}

// Access classifies a route.
type Access int

const (
	// Public routes render for everyone.
	Public Access = iota
	// GuestOnly routes (login, signup) bounce authenticated users home.
	GuestOnly
	// Protected routes require a session and, optionally, one of Roles.
	Protected
)

// Route is one entry of a route table.
type Route struct {
	Path   string
	Access Access
	Roles  []domain.Role
}

// Table describes an application's destinations.
type Table struct {
	Home   string
	Login  string
	Routes []Route
}

// Location is a navigation target. From is set on the login location when a
// protected destination was refused, so it can be resumed after login.
type Location struct {
	Path  string
	State map[string]string
	From  *Location
}

// Outcome is the kind of a Decision.
type Outcome int

const (
	Render Outcome = iota
	Redirect
	Deny
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// Decision is the result of authorizing a Location. For Render and Deny,
// Location is the requested one; for Redirect it is the new target.
type Decision struct {
	Outcome  Outcome
	Location Location
}

// Authorizer gates navigation using an AuthState.
type Authorizer struct {
	auth   AuthState
	home   string
	login  string
	routes map[string]Route
}

// NewAuthorizer builds an Authorizer for table. Paths match case-insensitively.
func NewAuthorizer(auth AuthState, table Table) *Authorizer {
	a := &Authorizer{
		auth:   auth,
		home:   Clean(table.Home),
		login:  Clean(table.Login),
		routes: make(map[string]Route, len(table.Routes)),
	}
	for _, r := range table.Routes {
		a.routes[key(r.Path)] = r
	}
	return a
}

// Home returns the home path.
func (a *Authorizer) Home() string { return a.home }

// LoginPath returns the login path.
func (a *Authorizer) LoginPath() string { return a.login }

// Authorize decides what happens when loc is requested.
func (a *Authorizer) Authorize(loc Location) Decision {
	loc.Path = Clean(loc.Path)
	authed := a.auth.IsAuthenticated()

	route, ok := a.routes[key(loc.Path)]
	if !ok {
		if authed {
			return redirect(a.home)
		}
		return redirect(a.login)
	}

	switch route.Access {
	case GuestOnly:
		if authed {
			return redirect(a.home)
		}
	case Protected:
		if !authed {
			origin := Location{Path: loc.Path, State: loc.State}
			return Decision{Outcome: Redirect, Location: Location{Path: a.login, From: &origin}}
		}
		if len(route.Roles) > 0 {
			id, _ := a.auth.CurrentIdentity()
			if !slices.Contains(route.Roles, id.Role) {
				return Decision{Outcome: Deny, Location: loc}
			}
		}
	}
	return Decision{Outcome: Render, Location: loc}
}

// Resume returns where to go after a successful login from loc: the recorded
// origin, or home when none was recorded.
func (a *Authorizer) Resume(loc Location) Location {
	if loc.From != nil && loc.From.Path != "" {
		return Location{Path: loc.From.Path, State: loc.From.State}
	}
	return Location{Path: a.home}
}

func redirect(p string) Decision {
	return Decision{Outcome: Redirect, Location: Location{Path: p}}
}

// Clean normalizes a path: leading slash, no trailing slash, no query.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

func key(p string) string {
	return strings.ToLower(Clean(p))
}
