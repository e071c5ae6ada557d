package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/httputil"
)

// Sentinel errors.
var (
	// ErrNetwork marks failures talking to a remote backend.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned by [GetJSON] when key is absent.
	ErrCacheMiss = errors.New("cache miss")
)

// backoff paces reconnects to a remote backend.
var backoff = httputil.Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Retryable marks err as worth another attempt.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool { return httputil.Retryable(err) }

// RetryWithBackoff calls fn up to three times, doubling a 100ms delay
// between attempts. Only retryable errors are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return backoff.Retry(ctx, fn)
}

// GetJSON decodes the entry at key into v. It returns [ErrCacheMiss] when
// the key is absent.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, v)
}

// SetJSON stores the JSON encoding of v at key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
