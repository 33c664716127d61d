package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const blobFileSuffix = ".blob"

// fileBlobStore keeps one file per key under a root directory. The key
// "a/b" lives at <root>/a/b.blob, so "a" and "a/b" never collide.
type fileBlobStore struct {
	root string
}

// NewFileBlobStore returns a [BlobStore] rooted at dir, creating it if needed.
func NewFileBlobStore(dir string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create blob dir: %w", ErrStorageFailure, err)
	}

	return &fileBlobStore{root: dir}, nil
}

func (f *fileBlobStore) path(key string) (string, error) {
	if err := validateBlobKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.root, filepath.FromSlash(key)+blobFileSuffix), nil
}

func (f *fileBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageFailure, key, err)
	}
	return data, nil
}

// Put writes to a temporary file in the target directory and renames it
// into place, so readers never observe a partial object.
func (f *fileBlobStore) Put(ctx context.Context, key string, data []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := f.writeTemp(p, data)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageFailure, key, err)
	}
	defer os.Remove(tmp)

	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("%w: rename %s: %w", ErrStorageFailure, key, err)
	}
	return nil
}

// PutIfAbsent hard-links a fully written temporary file to the final path.
// link(2) fails when the target exists, which makes the check atomic.
func (f *fileBlobStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := f.writeTemp(p, data)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageFailure, key, err)
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, p); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrBlobExists
		}
		return fmt.Errorf("%w: link %s: %w", ErrStorageFailure, key, err)
	}
	return nil
}

func (f *fileBlobStore) Delete(ctx context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %w", ErrStorageFailure, key, err)
	}
	return nil
}

func (f *fileBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), blobFileSuffix) {
			return nil
		}

		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), blobFileSuffix)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %w", ErrStorageFailure, prefix, err)
	}

	slices.Sort(keys)
	return keys, nil
}

func (f *fileBlobStore) writeTemp(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
