package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrStoreExists        = errors.New("store already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidScore       = errors.New("rating must be between 1 and 5")
)

// Client-side session errors.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrIncompleteIdentity = errors.New("identity is incomplete")
	ErrMalformedSession   = errors.New("malformed persisted session")
	ErrPersistence        = errors.New("session persistence failed")
	ErrExternalCall       = errors.New("external call failed")
)
