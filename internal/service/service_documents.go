package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/store"
	"github.com/MKhiriev/budget-keeper/models"
)

// documentService encrypts documents with the caller's DEK and stores them
// under "<userId>/<logicalKey>". The storage key is also the AES-GCM
// associated data, so a blob copied to another key or another user does not
// decrypt.
type documentService struct {
	blobs          store.BlobStore
	userRepository store.UserRepository
	keyChain       crypto.KeyChainService

	// signingSecret is the material of every server wrapping key.
	signingSecret []byte

	logger *logger.Logger
}

// NewDocumentService constructs a DocumentService. Logical keys are not
// validated here; wrap the result with NewDocumentValidationService.
func NewDocumentService(
	blobs store.BlobStore,
	userRepository store.UserRepository,
	keyChain crypto.KeyChainService,
	cfg config.Auth,
	logger *logger.Logger,
) DocumentService {
	return &documentService{
		blobs:          blobs,
		userRepository: userRepository,
		keyChain:       keyChain,
		signingSecret:  []byte(cfg.SigningSecret),
		logger:         logger,
	}
}

func (d *documentService) ReadDocument(ctx context.Context, identity models.Identity, logicalKey string) ([]byte, error) {
	log := logger.FromContext(ctx).With().Str("func", "*documentService.ReadDocument").Logger()

	dek, err := d.unlockDEK(ctx, identity)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(dek)

	storageKey := documentStorageKey(identity, logicalKey)
	blob, err := d.blobs.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			return nil, ErrDocumentNotFound
		}
		log.Err(err).Str("user_id", identity.UserID).Msg("reading document failed")
		return nil, fmt.Errorf("reading document failed: %w", err)
	}

	payload, err := d.keyChain.DecryptDocument(dek, blob, storageKey)
	if err != nil {
		log.Err(err).Str("user_id", identity.UserID).Str("key", logicalKey).Msg("stored document did not decrypt")
		return nil, fmt.Errorf("%w: document did not decrypt: %w", store.ErrStorageFailure, err)
	}

	return payload, nil
}

func (d *documentService) WriteDocument(ctx context.Context, identity models.Identity, logicalKey string, payload []byte) error {
	log := logger.FromContext(ctx).With().Str("func", "*documentService.WriteDocument").Logger()

	dek, err := d.unlockDEK(ctx, identity)
	if err != nil {
		return err
	}
	defer crypto.Zero(dek)

	storageKey := documentStorageKey(identity, logicalKey)
	blob, err := d.keyChain.EncryptDocument(dek, payload, storageKey)
	if err != nil {
		return err
	}

	if err = d.blobs.Put(ctx, storageKey, blob); err != nil {
		log.Err(err).Str("user_id", identity.UserID).Msg("writing document failed")
		return fmt.Errorf("writing document failed: %w", err)
	}

	return nil
}

// ListDocuments returns the caller's logical keys starting with prefix.
func (d *documentService) ListDocuments(ctx context.Context, identity models.Identity, prefix string) ([]string, error) {
	log := logger.FromContext(ctx).With().Str("func", "*documentService.ListDocuments").Logger()

	if _, err := d.authorize(ctx, identity); err != nil {
		return nil, err
	}

	userPrefix := identity.UserID + "/"
	storageKeys, err := d.blobs.List(ctx, userPrefix+prefix)
	if err != nil {
		log.Err(err).Str("user_id", identity.UserID).Msg("listing documents failed")
		return nil, fmt.Errorf("listing documents failed: %w", err)
	}

	keys := make([]string, 0, len(storageKeys))
	for _, storageKey := range storageKeys {
		keys = append(keys, strings.TrimPrefix(storageKey, userPrefix))
	}

	return keys, nil
}

// DeleteDocument removes a document. Deleting an absent document succeeds.
func (d *documentService) DeleteDocument(ctx context.Context, identity models.Identity, logicalKey string) error {
	log := logger.FromContext(ctx).With().Str("func", "*documentService.DeleteDocument").Logger()

	if _, err := d.authorize(ctx, identity); err != nil {
		return err
	}

	if err := d.blobs.Delete(ctx, documentStorageKey(identity, logicalKey)); err != nil {
		log.Err(err).Str("user_id", identity.UserID).Msg("deleting document failed")
		return fmt.Errorf("deleting document failed: %w", err)
	}

	return nil
}

// authorize loads the record named by identity. A missing record or one whose
// id differs from the token subject means the token outlived its account.
func (d *documentService) authorize(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := d.userRepository.FindUserByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if user.ID != identity.UserID {
		return models.User{}, ErrUnauthenticated
	}

	return user, nil
}

// unlockDEK opens the server-wrapped DEK of the caller. The caller owns the
// returned key and must zero it.
func (d *documentService) unlockDEK(ctx context.Context, identity models.Identity) ([]byte, error) {
	user, err := d.authorize(ctx, identity)
	if err != nil {
		return nil, err
	}

	wrappingKey, err := d.keyChain.ServerWrappingKey(d.signingSecret, user.Email)
	if err != nil {
		return nil, fmt.Errorf("derive server wrapping key: %w", err)
	}
	defer crypto.Zero(wrappingKey)

	dek, err := d.keyChain.UnwrapDEK(user.ServerWrappedDEK, wrappingKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID).Msg("server-wrapped DEK did not open")
		return nil, fmt.Errorf("%w: server-wrapped DEK did not open: %w", store.ErrStorageFailure, err)
	}

	return dek, nil
}

func documentStorageKey(identity models.Identity, logicalKey string) string {
	return identity.UserID + "/" + logicalKey
}
