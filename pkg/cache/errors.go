package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a Redis call that failed before a reply arrived.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is used inside retry loops to end a lookup that found
	// nothing; Get reports it as a plain miss.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so that a [RetryPolicy] retries it. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy bounds how long a cache operation may keep trying. Delays
// start at Initial and double up to Max.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

var (
	// LookupRetry is used for Get, Set and Delete. A scene that cannot be
	// fetched within a few hundred milliseconds is regenerated instead.
	LookupRetry = RetryPolicy{Attempts: 3, Initial: 50 * time.Millisecond, Max: 200 * time.Millisecond}

	// ConnectRetry is used once, when the cache is opened.
	ConnectRetry = RetryPolicy{Attempts: 5, Initial: 200 * time.Millisecond, Max: 2 * time.Second}
)

// Delay returns the wait before attempt n+1, counting from zero.
func (p RetryPolicy) Delay(n int) time.Duration {
	d := p.Initial
	for range n {
		if p.Max > 0 && d >= p.Max {
			break
		}
		d *= 2
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}

// Do calls fn until it succeeds, returns an error that is not retryable,
// or Attempts calls have been made. fn always runs at least once.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay(i)):
		}
	}
	return err
}
