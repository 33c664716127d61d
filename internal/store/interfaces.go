package store

import (
	"context"

	"github.com/MKhiriev/budget-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BlobStore is a flat key/value object store. Keys are "/"-separated paths;
// values are opaque bytes. Implementations must be safe for concurrent use.
type BlobStore interface {
	// Get returns the object stored under key or [ErrBlobNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or overwrites the object under key.
	Put(ctx context.Context, key string, data []byte) error

	// PutIfAbsent creates the object under key only if none exists yet and
	// returns [ErrBlobExists] otherwise. The check and the write are atomic.
	PutIfAbsent(ctx context.Context, key string, data []byte) error

	// Delete removes the object under key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error

	// List returns every key starting with prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// UserRepository persists user records.
type UserRepository interface {
	// FindUserByEmail loads the record of a lowercased email or returns
	// [ErrNoUserWasFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// CreateUser stores a new record and fails with [ErrEmailAlreadyExists]
	// when a record for the email already exists.
	CreateUser(ctx context.Context, user models.User) error

	// SaveUser overwrites the record of user.Email.
	SaveUser(ctx context.Context, user models.User) error
}

// ErrorClassificator decides whether a failed backend call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
