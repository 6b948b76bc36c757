// Package views holds the screens of the client: each view validates its
// form, calls one remote collaborator and updates the session or the
// navigator. Views never panic; failures come back as errors carrying a
// user-facing message.
package views

import (
	"errors"
	"fmt"

	"github.com/storerating/store-rating/internal/core/domain"
)

// ErrAccessDenied is returned when an identity's role is not accepted by the app.
var ErrAccessDenied = errors.New("access denied: invalid role")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}
