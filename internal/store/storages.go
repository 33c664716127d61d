package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/logger"
)

// Storages groups the storage components used by the services.
type Storages struct {
	BlobStore      BlobStore
	UserRepository UserRepository

	closers []func() error
}

// NewStorages opens the blob store backend selected by cfg.Backend and builds
// the repositories on top of it. SQL backends are migrated before use;
// remote backends (S3 and SQL) are wrapped with [NewRetryingBlobStore].
func NewStorages(ctx context.Context, cfg config.BlobStore, log *logger.Logger) (*Storages, error) {
	storages := &Storages{}

	var blobs BlobStore
	switch cfg.Backend {
	case config.BackendMemory, "":
		blobs = NewMemoryBlobStore()

	case config.BackendFile:
		fileStore, err := NewFileBlobStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		blobs = fileStore

	case config.BackendPostgres, config.BackendSQLite:
		db, err := connectSQL(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		storages.closers = append(storages.closers, db.Close)

		if err = db.Migrate(); err != nil {
			storages.Close()
			return nil, fmt.Errorf("error applying migrations: %w", err)
		}
		blobs = NewRetryingBlobStore(NewSQLBlobStore(db), db.errorClassificator, log)

	case config.BackendS3:
		s3Store, err := NewS3BlobStore(ctx, cfg.S3, log)
		if err != nil {
			return nil, err
		}
		blobs = NewRetryingBlobStore(s3Store, nil, log)

	default:
		return nil, fmt.Errorf("%w: unknown blob store backend %q", config.ErrInvalidStorageConfigs, cfg.Backend)
	}

	log.Info().Str("backend", cfg.Backend).Msg("blob store ready")

	storages.BlobStore = blobs
	storages.UserRepository = NewUserRepository(blobs, log)
	return storages, nil
}

// Close releases the connections held by the storages.
func (s *Storages) Close() error {
	var firstErr error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

func connectSQL(ctx context.Context, cfg config.BlobStore, log *logger.Logger) (*DB, error) {
	if cfg.Backend == config.BackendPostgres {
		return NewConnectPostgres(ctx, cfg.DSN, log)
	}
	return NewConnectSQLite(ctx, cfg.DSN, log)
}
