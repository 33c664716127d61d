package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
)

const (
	blobsTable     = "blobs"
	blobKeyColumn  = "blob_key"
	blobDataColumn = "data"
	blobTimeColumn = "updated_at"
)

// sqlBlobStore keeps objects in the blobs table created by the embedded
// migrations. The same queries serve Postgres and SQLite; only the
// placeholder format differs.
type sqlBlobStore struct {
	db  *DB
	now func() time.Time
}

// NewSQLBlobStore returns a [BlobStore] backed by db. The blobs table must
// exist; see [DB.Migrate].
func NewSQLBlobStore(db *DB) BlobStore {
	return &sqlBlobStore{db: db, now: time.Now}
}

func (s *sqlBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateBlobKey(key); err != nil {
		return nil, err
	}

	query, args, err := s.db.builder().
		Select(blobDataColumn).
		From(blobsTable).
		Where(sq.Eq{blobKeyColumn: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrExecutingQuery, err)
	}
	return data, nil
}

func (s *sqlBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	query, args, err := s.insert(key, data).
		Suffix("ON CONFLICT (" + blobKeyColumn + ") DO UPDATE SET " +
			blobDataColumn + " = excluded." + blobDataColumn + ", " +
			blobTimeColumn + " = excluded." + blobTimeColumn).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrExecutingQuery, err)
	}
	return nil
}

// PutIfAbsent relies on ON CONFLICT DO NOTHING: zero affected rows means the
// key was already taken.
func (s *sqlBlobStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	query, args, err := s.insert(key, data).
		Suffix("ON CONFLICT (" + blobKeyColumn + ") DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", ErrStorageFailure, err)
	}
	if affected == 0 {
		return ErrBlobExists
	}
	return nil
}

func (s *sqlBlobStore) Delete(ctx context.Context, key string) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	query, args, err := s.db.builder().
		Delete(blobsTable).
		Where(sq.Eq{blobKeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrExecutingQuery, err)
	}
	return nil
}

// List compares the leading characters of each key with prefix instead of
// using LIKE, so "%" and "_" in keys need no escaping.
func (s *sqlBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	builder := s.db.builder().
		Select(blobKeyColumn).
		From(blobsTable).
		OrderBy(blobKeyColumn)
	if prefix != "" {
		builder = builder.Where(sq.Expr("substr("+blobKeyColumn+", 1, ?) = ?", utf8.RuneCountInString(prefix), prefix))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrScanningRows, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrStorageFailure, ErrScanningRows, err)
	}

	return keys, nil
}

func (s *sqlBlobStore) insert(key string, data []byte) sq.InsertBuilder {
	return s.db.builder().
		Insert(blobsTable).
		Columns(blobKeyColumn, blobDataColumn, blobTimeColumn).
		Values(key, data, s.now().UTC())
}
