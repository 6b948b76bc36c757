package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storerating/store-rating/internal/client/apiclient"
	"github.com/storerating/store-rating/internal/core/domain"
)

// fakeServer is a stand-in API that counts the admin requests it receives.
type fakeServer struct {
	*httptest.Server
	adminCalls atomic.Int32
}

// fakeAPI answers the routes the CLI uses.
func fakeAPI(t *testing.T, role domain.Role) *fakeServer {
	t.Helper()
	f := &fakeServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user": map[string]string{
				"id": "u1", "name": "Alice", "email": "alice@example.com",
				"address": "1 Elm St", "role": string(role),
			},
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = fmt.Fprint(w, `{"message":"logged out"}`)
	})
	mux.HandleFunc("GET /stores", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `[
			{"id":"store1","storeName":"Good Foods Market","address":"100 Main St, Anytown","overallRating":4.5,"userRating":null},
			{"id":"store3","storeName":"SuperMart","address":"300 Highway Rd, Sometown","overallRating":null,"userRating":2}
		]`)
	})
	mux.HandleFunc("PUT /stores/{id}/rating", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"message":"rating submitted"}`)
	})
	mux.HandleFunc("GET /admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		f.adminCalls.Add(1)
		_, _ = fmt.Fprint(w, `{"totalUsers":3,"totalStores":2,"totalRatings":5}`)
	})
	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		f.adminCalls.Add(1)
		_, _ = fmt.Fprint(w, `[]`)
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func setEnv(t *testing.T, srv *fakeServer) {
	t.Helper()
	t.Setenv("STORERATE_API_URL", srv.URL)
	t.Setenv("STORERATE_SESSION_BACKEND", "file")
	t.Setenv("STORERATE_SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func TestCLI_SessionSurvivesInvocations(t *testing.T) {
	setEnv(t, fakeAPI(t, domain.RoleEndUser))

	out, err := runCLI(t, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, "Not logged in")

	out, err = runCLI(t, "login", "alice@example.com", "secret1", "-next", "/settings")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as Alice (Normal User)")
	require.Contains(t, out, "-> /settings")

	out, err = runCLI(t, "whoami")
	require.NoError(t, err)
	require.Contains(t, out, `"email": "alice@example.com"`)

	out, err = runCLI(t, "stores", "-name", "mart")
	require.NoError(t, err)
	require.Contains(t, out, "SuperMart")
	require.NotContains(t, out, "Good Foods Market")

	out, err = runCLI(t, "rate", "store1", "5")
	require.NoError(t, err)
	require.Contains(t, out, "5/5")

	out, err = runCLI(t, "logout")
	require.NoError(t, err)
	require.Contains(t, out, "Logged out")

	out, err = runCLI(t, "stores")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	require.Contains(t, out, "-> /login")
	require.Contains(t, out, "after login: /")
}

func TestCLI_ProtectedCommandsRequireLogin(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdministrator)
	setEnv(t, srv)

	cases := map[string][]string{
		"stores":          {"stores"},
		"rate":            {"rate", "store1", "4"},
		"password":        {"password", "-current", "secret1", "-new", "secret2", "-confirm", "secret2"},
		"admin dashboard": {"admin", "dashboard"},
		"admin users":     {"-admin", "admin", "users"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := runCLI(t, args...)
			require.ErrorIs(t, err, domain.ErrNotAuthenticated)
			require.Contains(t, out, "-> /login")
		})
	}

	out, err := runCLI(t, "password", "-current", "a", "-new", "b", "-confirm", "b")
	require.Error(t, err)
	require.Contains(t, out, "after login: /settings")
	require.Zero(t, srv.adminCalls.Load())
}

func TestCLI_AdminCommandsDenyEndUser(t *testing.T) {
	srv := fakeAPI(t, domain.RoleEndUser)
	setEnv(t, srv)

	_, err := runCLI(t, "login", "alice@example.com", "secret1")
	require.NoError(t, err)

	for _, sub := range []string{"dashboard", "users", "add-user", "stores", "add-store", "ratings"} {
		t.Run(sub, func(t *testing.T) {
			_, err := runCLI(t, "-admin", "admin", sub)
			require.ErrorIs(t, err, domain.ErrForbidden)
		})
	}
	require.Zero(t, srv.adminCalls.Load(), "denied commands must not reach the API")

	// The end-user commands stay open to the same session.
	_, err = runCLI(t, "stores")
	require.NoError(t, err)
}

func TestCLI_AdminCommandsAllowAdministrator(t *testing.T) {
	srv := fakeAPI(t, domain.RoleAdministrator)
	setEnv(t, srv)

	_, err := runCLI(t, "-admin", "login", "alice@example.com", "secret1")
	require.NoError(t, err)

	out, err := runCLI(t, "-admin", "admin", "dashboard")
	require.NoError(t, err)
	require.Contains(t, out, `"totalRatings": 5`)
	require.EqualValues(t, 1, srv.adminCalls.Load())
}

func TestCLI_AdminAppRejectsEndUser(t *testing.T) {
	setEnv(t, fakeAPI(t, domain.RoleEndUser))

	_, err := runCLI(t, "-admin", "login", "alice@example.com", "secret1")
	require.Error(t, err)
	require.Equal(t, "access denied: invalid role", userMessage(err))

	out, err := runCLI(t, "-admin", "open", "/users")
	require.NoError(t, err)
	require.Contains(t, out, "-> /login")
	require.Contains(t, out, "after login: /users")
}

func TestCLI_Validation(t *testing.T) {
	setEnv(t, fakeAPI(t, domain.RoleEndUser))

	_, err := runCLI(t, "signup", "-name", "A", "-email", "a@b.c", "-address", "x", "-password", "secret1", "-confirm", "nope")
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Equal(t, "passwords do not match", userMessage(err))

	_, err = runCLI(t, "rate", "store1", "high")
	require.ErrorIs(t, err, domain.ErrInvalidScore)

	_, err = runCLI(t, "bogus")
	require.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	apiErr := &apiclient.Error{Status: http.StatusConflict, Message: "user already exists"}
	require.Equal(t, "user already exists", userMessage(fmt.Errorf("sign up: %w", apiErr)))
	require.Equal(t, "boom", userMessage(fmt.Errorf("boom")))
	require.True(t, strings.HasPrefix(userMessage(domain.ErrNotAuthenticated), "not authenticated"))
}

func TestReorder(t *testing.T) {
	require.Equal(t, []string{"-next", "/x", "a", "b"}, reorder([]string{"a", "b", "-next", "/x"}))
	require.Equal(t, []string{"-next=/x", "a"}, reorder([]string{"a", "-next=/x"}))
}
