package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/budget-keeper/internal/logger"
)

// DefaultRetryDelay is the pause between the first attempt and the retry.
const DefaultRetryDelay = 100 * time.Millisecond

type retryingBlobStore struct {
	inner      BlobStore
	classifier ErrorClassificator
	delay      time.Duration
	logger     *logger.Logger
}

// NewRetryingBlobStore wraps inner so that every failed call is attempted one
// more time after [DefaultRetryDelay]. Not-found, already-exists, invalid-key
// and context errors are returned at once, as is anything classifier reports
// as [NonRetryable]. A nil classifier treats every other error as retryable.
func NewRetryingBlobStore(inner BlobStore, classifier ErrorClassificator, log *logger.Logger) BlobStore {
	return &retryingBlobStore{
		inner:      inner,
		classifier: classifier,
		delay:      DefaultRetryDelay,
		logger:     log,
	}
}

func (r *retryingBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.do(ctx, "Get", func(ctx context.Context) error {
		var err error
		data, err = r.inner.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *retryingBlobStore) Put(ctx context.Context, key string, data []byte) error {
	return r.do(ctx, "Put", func(ctx context.Context) error {
		return r.inner.Put(ctx, key, data)
	})
}

// PutIfAbsent may observe ErrBlobExists on the retry when the first attempt
// reached the backend but its response was lost.
func (r *retryingBlobStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	return r.do(ctx, "PutIfAbsent", func(ctx context.Context) error {
		return r.inner.PutIfAbsent(ctx, key, data)
	})
}

func (r *retryingBlobStore) Delete(ctx context.Context, key string) error {
	return r.do(ctx, "Delete", func(ctx context.Context) error {
		return r.inner.Delete(ctx, key)
	})
}

func (r *retryingBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.do(ctx, "List", func(ctx context.Context) error {
		var err error
		keys, err = r.inner.List(ctx, prefix)
		return err
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *retryingBlobStore) do(ctx context.Context, op string, fn retry.RetryFunc) error {
	attempt := 0
	backoff := retry.WithMaxRetries(1, retry.NewConstant(r.delay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil || !r.retryable(err) {
			return err
		}

		r.logger.Warn().Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Msg("blob store call failed")
		return retry.RetryableError(err)
	})
	if err == nil {
		return nil
	}

	if r.retryable(err) && !errors.Is(err, ErrStorageFailure) {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return err
}

func (r *retryingBlobStore) retryable(err error) bool {
	switch {
	case errors.Is(err, ErrBlobNotFound),
		errors.Is(err, ErrBlobExists),
		errors.Is(err, ErrInvalidBlobKey),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}

	if r.classifier != nil && r.classifier.Classify(err) == NonRetryable {
		return false
	}
	return true
}
