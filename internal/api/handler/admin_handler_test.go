package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

func TestAdminHandler_Dashboard(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		dashboardFn: func(ctx context.Context) (*domain.DashboardStats, error) {
			return &domain.DashboardStats{TotalUsers: 3, TotalStores: 5, TotalRatings: 7}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/admin/dashboard", nil)
	if err := handler.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)

	var got domain.DashboardStats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.TotalUsers != 3 || got.TotalStores != 5 || got.TotalRatings != 7 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAdminHandler_ListUsers_Filters(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		listUsersFn: func(ctx context.Context, f ports.UserFilter) ([]*domain.User, error) {
			want := ports.UserFilter{Name: "ali", Email: "example", Role: domain.RoleStoreOwner}
			if f != want {
				t.Fatalf("got %+v, want %+v", f, want)
			}
			return []*domain.User{alice()}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/admin/users?name=ali&email=example&role=Store+Owner", nil)
	if err := handler.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)
}

func TestAdminHandler_AddUser(t *testing.T) {
	e := newEcho()
	stub := &stubAdminService{
		addUserFn: func(ctx context.Context, in ports.AddUserInput) (*domain.User, error) {
			if in.Role != domain.RoleStoreOwner {
				t.Fatalf("unexpected role %q", in.Role)
			}
			return &domain.User{ID: "u9", Name: in.Name, Email: in.Email, Address: in.Address, Role: in.Role}, nil
		},
	}
	handler := NewAdminHandler(stub)

	body := `{"name":"Olga","email":"olga@example.com","address":"9 Pine Rd","password":"secret1","role":"Store Owner"}`
	c, rec := newJSONContext(e, http.MethodPost, "/admin/users", strings.NewReader(body))
	if err := handler.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusCreated)
}

func TestAdminHandler_AddUser_UnknownRole(t *testing.T) {
	e := newEcho()
	handler := NewAdminHandler(&stubAdminService{
		addUserFn: func(ctx context.Context, in ports.AddUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	body := `{"name":"Olga","email":"olga@example.com","address":"9 Pine Rd","password":"secret1","role":"root"}`
	c, rec := newJSONContext(e, http.MethodPost, "/admin/users", strings.NewReader(body))
	_ = handler.AddUser(c)

	mustStatus(t, rec, http.StatusBadRequest)
	if !strings.Contains(rec.Body.String(), "known role") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAdminHandler_AddStore(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"created", `{"storeName":"Corner Shop","address":"3 Side St","ownerId":"u2"}`, nil, http.StatusCreated},
		{"missing name", `{"address":"3 Side St"}`, nil, http.StatusBadRequest},
		{"owner missing", `{"storeName":"Corner Shop","address":"3 Side St","ownerId":"zz"}`, domain.ErrUserNotFound, http.StatusNotFound},
		{"owner wrong role", `{"storeName":"Corner Shop","address":"3 Side St","ownerId":"u1"}`, domain.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			handler := NewAdminHandler(&stubAdminService{
				addStoreFn: func(ctx context.Context, in ports.AddStoreInput) (*domain.Store, error) {
					if tc.err != nil {
						return nil, tc.err
					}
					return &domain.Store{ID: "s9", Name: in.Name, Address: in.Address, OwnerID: in.OwnerID}, nil
				},
			})

			c, rec := newJSONContext(e, http.MethodPost, "/admin/stores", strings.NewReader(tc.body))
			_ = handler.AddStore(c)

			mustStatus(t, rec, tc.want)
		})
	}
}

func TestAdminHandler_ListStoresAndRatings(t *testing.T) {
	e := newEcho()
	handler := NewAdminHandler(&stubAdminService{
		listStoresFn: func(ctx context.Context, f ports.StoreFilter) ([]domain.Store, error) {
			if f.Name != "food" {
				t.Fatalf("unexpected filter %+v", f)
			}
			return []domain.Store{{ID: "s1", Name: "Good Foods Market"}}, nil
		},
		listRatingsFn: func(ctx context.Context) ([]*domain.Rating, error) {
			return []*domain.Rating{{StoreID: "s1", UserID: "u1", Score: 4}}, nil
		},
	})

	c, rec := newJSONContext(e, http.MethodGet, "/admin/stores?name=food", nil)
	if err := handler.ListStores(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)

	c, rec = newJSONContext(e, http.MethodGet, "/admin/ratings", nil)
	if err := handler.ListRatings(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"rating":4`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
