package util

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TransientError marks a failure worth retrying: a transport error,
// timeout, or a 429/5xx response.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as retriable. Returns nil for a nil err.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is marked retriable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// RetryPolicy bounds and shapes the retry loop around a network operation.
type RetryPolicy struct {
	// MaxAttempts is the total attempt count, first try included.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt; it doubles for
	// each attempt after that.
	InitialDelay time.Duration
	// Retriable decides whether a failure is worth another attempt.
	// Defaults to IsTransient.
	Retriable func(error) bool
	// OnGiveUp fires exactly once when retriable attempts are exhausted.
	// Never called for non-retriable failures.
	OnGiveUp func(error)
}

// DefaultRetryPolicy allows five total attempts with a 1s, 2s, 4s, 8s
// backoff schedule.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		Retriable:    IsTransient,
	}
}

// Retry runs op under the policy. Non-retriable errors propagate
// immediately. Retries are never silent: the final retriable failure is
// both reported through OnGiveUp and returned.
func Retry(ctx context.Context, p RetryPolicy, op func() error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	retriable := p.Retriable
	if retriable == nil {
		retriable = IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := p.InitialDelay << uint(attempt-2)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := op()
		if err == nil {
			return nil
		}
		if !retriable(err) {
			return err
		}
		lastErr = err
	}

	if p.OnGiveUp != nil {
		p.OnGiveUp(lastErr)
	}
	return fmt.Errorf("giving up after %d attempts: %w", p.MaxAttempts, lastErr)
}
