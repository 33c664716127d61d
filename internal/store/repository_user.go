package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/models"
)

// usersPrefix is the blob key namespace of user records.
const usersPrefix = "users/"

// userRepository stores one JSON record per user in a [BlobStore].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of storage interactions.
type userRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] over blobs.
func NewUserRepository(blobs BlobStore, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		blobs:  blobs,
		logger: logger,
	}
}

// UserRecordKey returns the blob key of the record of a lowercased email.
// The email is path-escaped so that it always forms a single key segment.
func UserRecordKey(email string) string {
	return usersPrefix + url.PathEscape(email) + ".json"
}

// FindUserByEmail loads and decodes the record stored for email.
//
// Error handling:
//   - missing record → [ErrNoUserWasFound];
//   - undecodable record → [ErrMalformedUserRecord];
//   - any other failure is returned as produced by the blob store.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	data, err := r.blobs.Get(ctx, UserRecordKey(email))
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error reading user record")
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(data, &user); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error decoding user record")
		return models.User{}, fmt.Errorf("%w: %w", ErrMalformedUserRecord, err)
	}

	return user, nil
}

// CreateUser stores a record for a new email. The write is conditional, so
// two concurrent registrations of the same email cannot both succeed: the
// loser receives [ErrEmailAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error encoding user record: %w", err)
	}

	err = r.blobs.PutIfAbsent(ctx, UserRecordKey(user.Email), data)
	if err != nil {
		if errors.Is(err, ErrBlobExists) {
			return ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user record")
		return err
	}

	return nil
}

// SaveUser overwrites the record of user.Email with the given value.
func (r *userRepository) SaveUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error encoding user record: %w", err)
	}

	if err = r.blobs.Put(ctx, UserRecordKey(user.Email), data); err != nil {
		log.Err(err).Str("func", "*userRepository.SaveUser").Msg("error saving user record")
		return err
	}

	return nil
}
