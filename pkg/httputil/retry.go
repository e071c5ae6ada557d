package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable reports whether err, or anything it wraps, is a [RetryableError].
func Retryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the pause after the first failure; it doubles after each one.
	Delay time.Duration
}

// DefaultBackoff makes three attempts, half a second apart at first.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond}

// Retry calls fn until it succeeds, returns a non-retryable error or runs
// out of attempts. The last error is returned; cancellation of ctx during a
// pause returns ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for i := range max(b.Attempts, 1) {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			delay *= 2
		}
		if err = fn(); err == nil || !Retryable(err) {
			return err
		}
	}
	return err
}
