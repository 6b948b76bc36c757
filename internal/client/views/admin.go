package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/listing"
	"github.com/storerating/store-rating/internal/core/ports"
)

// AdminView backs the administrator dashboard screens.
type AdminView struct {
	console ports.AdminConsole
}

// NewAdminView returns the dashboard screens backed by console.
func NewAdminView(console ports.AdminConsole) *AdminView {
	return &AdminView{console: console}
}

// Dashboard fetches the platform totals.
func (v *AdminView) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	return v.console.Dashboard(ctx)
}

// Users lists accounts matching f. An unknown role filter is rejected locally.
func (v *AdminView) Users(ctx context.Context, f ports.UserFilter) ([]domain.User, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, invalid(fmt.Sprintf("unknown role %q", f.Role))
	}
	return v.console.ListUsers(ctx, f)
}

// AddUser validates the form and creates the account.
func (v *AdminView) AddUser(ctx context.Context, in ports.AddUserInput) (domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Address) == "" {
		return domain.User{}, invalid("please fill in all fields")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return domain.User{}, invalid(fmt.Sprintf("password must be at least %d characters long", domain.MinPasswordLength))
	}
	if !in.Role.Valid() {
		return domain.User{}, invalid(fmt.Sprintf("unknown role %q", in.Role))
	}
	return v.console.AddUser(ctx, in)
}

// Stores lists stores; the filters are also applied locally so a server
// that ignores them still yields the narrowed list.
func (v *AdminView) Stores(ctx context.Context, f ports.StoreFilter) ([]domain.Store, error) {
	stores, err := v.console.ListStores(ctx, f)
	if err != nil {
		return nil, err
	}
	return listing.Filter(stores, f.Name, f.Address), nil
}

// AddStore validates the form and creates the store.
func (v *AdminView) AddStore(ctx context.Context, in ports.AddStoreInput) (domain.Store, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" {
		return domain.Store{}, invalid("store name and address are required")
	}
	return v.console.AddStore(ctx, in)
}

// Ratings lists every submitted rating.
func (v *AdminView) Ratings(ctx context.Context) ([]domain.Rating, error) {
	return v.console.ListRatings(ctx)
}
