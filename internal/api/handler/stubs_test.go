package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

type stubAuthService struct {
	signUpFn         func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	logoutFn         func(ctx context.Context, tokenID string) error
	changePasswordFn func(ctx context.Context, in ports.ChangePasswordInput) error
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string) error {
	return s.logoutFn(ctx, tokenID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, in)
}

type stubStoreService struct {
	listFn func(ctx context.Context, in ports.ListStoresInput) ([]domain.Store, error)
	rateFn func(ctx context.Context, in ports.RateStoreInput) error
}

func (s *stubStoreService) ListForViewer(ctx context.Context, in ports.ListStoresInput) ([]domain.Store, error) {
	return s.listFn(ctx, in)
}

func (s *stubStoreService) Rate(ctx context.Context, in ports.RateStoreInput) error {
	return s.rateFn(ctx, in)
}

type stubAdminService struct {
	dashboardFn   func(ctx context.Context) (*domain.DashboardStats, error)
	listUsersFn   func(ctx context.Context, f ports.UserFilter) ([]*domain.User, error)
	addUserFn     func(ctx context.Context, in ports.AddUserInput) (*domain.User, error)
	listStoresFn  func(ctx context.Context, f ports.StoreFilter) ([]domain.Store, error)
	addStoreFn    func(ctx context.Context, in ports.AddStoreInput) (*domain.Store, error)
	listRatingsFn func(ctx context.Context) ([]*domain.Rating, error)
}

func (s *stubAdminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return s.dashboardFn(ctx)
}

func (s *stubAdminService) ListUsers(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
	return s.listUsersFn(ctx, f)
}

func (s *stubAdminService) AddUser(ctx context.Context, in ports.AddUserInput) (*domain.User, error) {
	return s.addUserFn(ctx, in)
}

func (s *stubAdminService) ListStores(ctx context.Context, f ports.StoreFilter) ([]domain.Store, error) {
	return s.listStoresFn(ctx, f)
}

func (s *stubAdminService) AddStore(ctx context.Context, in ports.AddStoreInput) (*domain.Store, error) {
	return s.addStoreFn(ctx, in)
}

func (s *stubAdminService) ListRatings(ctx context.Context) ([]*domain.Rating, error) {
	return s.listRatingsFn(ctx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// authenticate sets the claims the Auth middleware would have injected.
func authenticate(c echo.Context, userID string, role domain.Role) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, string(role))
	c.Set(middleware.CtxTokenID, "tok-"+userID)
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
