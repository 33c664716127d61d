package adapter

import "errors"

// Sentinel errors for non-2xx responses and client-side preconditions.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNoToken is returned by authenticated calls made before a token was
	// set.
	ErrNoToken = errors.New("not logged in")

	// ErrMissingToken is returned when a token-issuing response carries no
	// bearer token.
	ErrMissingToken = errors.New("server response carries no token")
)
