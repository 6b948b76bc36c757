// Package apiclient is the HTTP client of the store-rating API. It implements
// the collaborator interfaces the client views depend on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// TokenSource yields the credential attached to outgoing requests. The
// session gate satisfies it.
type TokenSource interface {
	Token() string
}

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap makes every API error match domain.ErrExternalCall.
func (e *Error) Unwrap() error { return domain.ErrExternalCall }

// Is additionally matches ErrNotAuthenticated on 401.
func (e *Error) Is(target error) bool {
	return target == domain.ErrNotAuthenticated && e.Status == http.StatusUnauthorized
}

// Client calls the store-rating API on behalf of the current session.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

// New builds a client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
	}
}

var (
	_ ports.Authenticator   = (*Client)(nil)
	_ ports.Registrar       = (*Client)(nil)
	_ ports.StoreFetcher    = (*Client)(nil)
	_ ports.RatingSubmitter = (*Client)(nil)
	_ ports.PasswordChanger = (*Client)(nil)
	_ ports.AdminConsole    = (*Client)(nil)
)

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// Login exchanges credentials for the account identity and its token.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Identity, string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return domain.Identity{}, "", err
	}
	return resp.User, resp.Token, nil
}

// SignUp registers a Normal User account.
func (c *Client) SignUp(ctx context.Context, in ports.SignUpInput) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"address":  in.Address,
		"password": in.Password,
	}, nil)
}

// Logout revokes the current token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// ChangePassword replaces the session user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPut, "/auth/password", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}, nil)
}

// FetchStores lists stores annotated with the session user's rating.
func (c *Client) FetchStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	if err := c.do(ctx, http.MethodGet, "/stores", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// SubmitRating records a 1..5 score for a store.
func (c *Client) SubmitRating(ctx context.Context, storeID string, score int) error {
	return c.do(ctx, http.MethodPut, "/stores/"+url.PathEscape(storeID)+"/rating", map[string]int{"rating": score}, nil)
}

// Dashboard returns the administrator totals.
func (c *Client) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &stats)
	return stats, err
}

// ListUsers lists accounts matching f.
func (c *Client) ListUsers(ctx context.Context, f ports.UserFilter) ([]domain.User, error) {
	q := url.Values{}
	setQuery(q, "name", f.Name)
	setQuery(q, "email", f.Email)
	setQuery(q, "address", f.Address)
	setQuery(q, "role", string(f.Role))

	var users []domain.User
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/users", q), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser creates an account with any role.
func (c *Client) AddUser(ctx context.Context, in ports.AddUserInput) (domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/admin/users", map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"address":  in.Address,
		"password": in.Password,
		"role":     string(in.Role),
	}, &user)
	return user, err
}

// ListStores lists stores matching f.
func (c *Client) ListStores(ctx context.Context, f ports.StoreFilter) ([]domain.Store, error) {
	q := url.Values{}
	setQuery(q, "name", f.Name)
	setQuery(q, "address", f.Address)

	var stores []domain.Store
	if err := c.do(ctx, http.MethodGet, withQuery("/admin/stores", q), nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// AddStore creates a store.
func (c *Client) AddStore(ctx context.Context, in ports.AddStoreInput) (domain.Store, error) {
	var store domain.Store
	err := c.do(ctx, http.MethodPost, "/admin/stores", map[string]string{
		"storeName": in.Name,
		"email":     in.Email,
		"address":   in.Address,
		"ownerId":   in.OwnerID,
	}, &store)
	return store, err
}

// ListRatings lists every submitted rating.
func (c *Client) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	var ratings []domain.Rating
	if err := c.do(ctx, http.MethodGet, "/admin/ratings", nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Echo posts body to the passthrough endpoint and returns the echoed data.
func (c *Client) Echo(ctx context.Context, body any) (json.RawMessage, error) {
	var resp struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api", body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrExternalCall, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", domain.ErrExternalCall, method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &env); err == nil {
		switch {
		case env.Error != "":
			msg = env.Error
		case env.Message != "":
			msg = env.Message
		}
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

// StatusOf returns the HTTP status of an API error, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func setQuery(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
