package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-user and wrong-password
	// failures. Callers must not be able to tell the two apart; the
	// distinction is recorded in the login log only.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorage indicates the authentication path could not reach or
	// write the persistent store. Surfaced as a system error to the caller.
	ErrStorage = errors.New("storage error")
)
