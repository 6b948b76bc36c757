package navigation

import "github.com/storerating/store-rating/internal/core/domain"

// End-user application paths.
const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathSignUp   = "/signup"
	PathSettings = "/settings"
)

// Administrator application paths.
const (
	PathUsers    = "/users"
	PathAddUser  = "/users/new"
	PathStores   = "/stores"
	PathAddStore = "/stores/new"
	PathRatings  = "/ratings"
)

// UserApp is the route table of the end-user application.
func UserApp() Table {
	return Table{
		Home:  PathHome,
		Login: PathLogin,
		Routes: []Route{
			{Path: PathLogin, Access: GuestOnly},
			{Path: PathSignUp, Access: GuestOnly},
			{Path: PathHome, Access: Protected},
			{Path: PathSettings, Access: Protected},
		},
	}
}

// AdminApp is the route table of the administrator dashboard.
func AdminApp() Table {
	admin := []domain.Role{domain.RoleAdministrator}
	return Table{
		Home:  PathHome,
		Login: PathLogin,
		Routes: []Route{
			{Path: PathLogin, Access: GuestOnly},
			{Path: PathHome, Access: Protected, Roles: admin},
			{Path: PathUsers, Access: Protected, Roles: admin},
			{Path: PathAddUser, Access: Protected, Roles: admin},
			{Path: PathStores, Access: Protected, Roles: admin},
			{Path: PathAddStore, Access: Protected, Roles: admin},
			{Path: PathRatings, Access: Protected, Roles: admin},
		},
	}
}
