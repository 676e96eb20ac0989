package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Identifiants employé invalides")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")

	// ErrSessionExpired is returned by the client after the API rejected the
	// stored credential and the session was cleared.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrNoSession is returned when no token or identity is persisted.
	ErrNoSession = errors.New("not logged in")
)
