package store

import "errors"

// Sentinel errors returned by blob stores and repositories to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrBlobNotFound is returned by [BlobStore.Get] when no object exists
	// under the requested key.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobExists is returned by [BlobStore.PutIfAbsent] when an object
	// already exists under the requested key.
	ErrBlobExists = errors.New("blob already exists")

	// ErrInvalidBlobKey is returned for empty keys and keys that could escape
	// the store namespace (absolute paths, "." or ".." segments).
	ErrInvalidBlobKey = errors.New("invalid blob key")

	// ErrStorageFailure wraps every infrastructure failure of a backend
	// (network, driver, file system). It maps to HTTP 500.
	ErrStorageFailure = errors.New("storage failure")

	// ErrEmailAlreadyExists is returned when registration finds an existing
	// user record for the email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when no user record exists for an email.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrMalformedUserRecord is returned when a stored user record cannot be
	// decoded.
	ErrMalformedUserRecord = errors.New("malformed user record")
)

// Low-level database operation errors. These are wrapped by the SQL blob
// store when an operation fails before a result can be interpreted.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
