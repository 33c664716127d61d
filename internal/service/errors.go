package service

import "errors"

var (
	// ErrValidation wraps the rule a request broke, e.g.
	// "validation failed: password must contain a digit".
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers an unknown email, a wrong password and a
	// wrong Recovery Key alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrUnauthenticated is returned when a verified token no longer matches
	// a stored account.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrDocumentNotFound = errors.New("document not found")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
