package domain

import "strings"

// Role is the authorization level carried by an Identity.
type Role string

const (
	RoleEndUser       Role = "Normal User"
	RoleStoreOwner    Role = "Store Owner"
	RoleAdministrator Role = "System Administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEndUser, RoleStoreOwner, RoleAdministrator:
		return true
	}
	return false
}

// Identity is the profile of an authenticated actor. It is issued by the
// authentication collaborator and never modified for the lifetime of a session.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

// Complete reports whether every field is populated and the role is known.
func (i Identity) Complete() bool {
	for _, f := range []string{i.ID, i.Name, i.Email, i.Address} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return i.Role.Valid()
}
