// Package retry runs fallible operations with bounded attempts and
// exponential backoff. The sleep and backoff functions are injectable so
// callers can test the schedule without waiting on a real clock.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Error wraps the terminal failure with the number of attempts made.
type Error struct {
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options configure Do. Zero values pick the defaults: 3 attempts,
// 2^attempt-second backoff, every error retryable, real time.Sleep.
type Options struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(error) bool
	Sleep       func(time.Duration)
}

// ExponentialBackoff returns 2^attempt seconds: 1s, 2s, 4s, ...
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// Do invokes op until it succeeds, fails non-retryably, or the attempt
// budget is spent. A non-retryable error returns immediately with no
// sleep; exhaustion returns the last error. Both are wrapped in *Error.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts Options) (T, error) {
	var zero T

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.Backoff == nil {
		opts.Backoff = ExponentialBackoff
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	retryable := opts.Retryable
	if retryable == nil {
		retryable = func(error) bool { return true }
	}

	var lastErr error
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return zero, &Error{Attempts: attempt + 1, Err: err}
		}
		if attempt == opts.MaxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return zero, &Error{Attempts: attempt + 1, Err: ctx.Err()}
		}
		opts.Sleep(opts.Backoff(attempt))
	}

	return zero, &Error{Attempts: opts.MaxAttempts, Err: lastErr}
}
