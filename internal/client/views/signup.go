package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/navigation"
	"github.com/storerating/store-rating/internal/core/ports"
)

// SignUpForm is what the sign-up screen collects.
type SignUpForm struct {
	Name     string
	Email    string
	Address  string
	Password string
	Confirm  string
}

// SignUpView is the registration screen.
type SignUpView struct {
	reg ports.Registrar
	nav *navigation.Navigator
}

// NewSignUpView returns a registration screen that sends users to login on success.
func NewSignUpView(reg ports.Registrar, nav *navigation.Navigator) *SignUpView {
	return &SignUpView{reg: reg, nav: nav}
}

// Submit registers the account and moves to the login screen.
func (v *SignUpView) Submit(ctx context.Context, f SignUpForm) (navigation.Decision, error) {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Address) == "" {
		return navigation.Decision{}, invalid("please fill in all fields")
	}
	if f.Password != f.Confirm {
		return navigation.Decision{}, invalid("passwords do not match")
	}
	if len(f.Password) < domain.MinPasswordLength {
		return navigation.Decision{}, invalid(fmt.Sprintf("password must be at least %d characters long", domain.MinPasswordLength))
	}

	err := v.reg.SignUp(ctx, ports.SignUpInput{
		Name:     f.Name,
		Email:    f.Email,
		Address:  f.Address,
		Password: f.Password,
	})
	if err != nil {
		return navigation.Decision{}, fmt.Errorf("sign up: %w", err)
	}
	return v.nav.Go(navigation.Location{Path: navigation.PathLogin}), nil
}
