package views

import (
	"context"
	"fmt"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// PasswordForm is the profile settings form.
type PasswordForm struct {
	Current string
	New     string
	Confirm string
}

// ProfileView is the profile settings screen.
type ProfileView struct {
	changer ports.PasswordChanger
}

// NewProfileView returns a profile screen that submits through changer.
func NewProfileView(changer ports.PasswordChanger) *ProfileView {
	return &ProfileView{changer: changer}
}

// ChangePassword checks the form locally, then asks the server to change the password.
func (v *ProfileView) ChangePassword(ctx context.Context, f PasswordForm) error {
	if f.Current == "" || f.New == "" || f.Confirm == "" {
		return invalid("please fill in all password fields")
	}
	if f.New != f.Confirm {
		return invalid("new password and confirm password do not match")
	}
	if len(f.New) < domain.MinPasswordLength {
		return invalid(fmt.Sprintf("new password must be at least %d characters long", domain.MinPasswordLength))
	}
	if f.New == f.Current {
		return invalid("new password cannot be the same as the current password")
	}
	if err := v.changer.ChangePassword(ctx, f.Current, f.New); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
