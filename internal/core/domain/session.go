package domain

// Session is the client-held authentication state.
// Authenticated is true exactly when Identity is non-nil.
type Session struct {
	Authenticated bool
	Identity      *Identity
	Token         string
}

// LoggedOut returns the zero session.
func LoggedOut() Session {
	return Session{}
}

// LoggedIn returns a session for id carrying token.
func LoggedIn(id Identity, token string) Session {
	return Session{Authenticated: true, Identity: &id, Token: token}
}
