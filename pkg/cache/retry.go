package cache

import (
	"context"
	"errors"
	"time"
)

const (
	retryAttempts     = 3
	retryInitialDelay = time.Second
)

// RetryableError marks an error as worth retrying (timeouts, 5xx).
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError; nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times with exponential backoff,
// starting at one second. Only errors marked Retryable trigger another
// attempt; context cancellation during a backoff wait returns ctx.Err().
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryInitialDelay
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
