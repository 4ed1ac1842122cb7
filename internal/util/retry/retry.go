// Package retry provides bounded retry with exponential backoff.
//
// Every external call the provisioner and the bootstrap coordinator make
// (cloud API, distribution download, peer address lookup) goes through
// [Do]. Errors wrapped with [Permanent] stop the loop immediately;
// everything else is treated as transient and retried until the attempt
// budget or the context runs out.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy controls the retry loop.
type Policy struct {
	Attempts     int           // total attempts, including the first
	InitialDelay time.Duration // delay before the second attempt
	MaxDelay     time.Duration // cap for the growing delay
	Multiplier   float64       // delay growth factor
}

// DefaultPolicy is used when no options are given.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:     6,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Option mutates a Policy.
type Option func(*Policy)

// Attempts sets the total number of attempts.
func Attempts(n int) Option {
	return func(p *Policy) { p.Attempts = n }
}

// InitialDelay sets the delay before the first retry.
func InitialDelay(d time.Duration) Option {
	return func(p *Policy) { p.InitialDelay = d }
}

// MaxDelay caps the backoff delay.
func MaxDelay(d time.Duration) Option {
	return func(p *Policy) { p.MaxDelay = d }
}

// Do runs op until it succeeds, returns a permanent error, exhausts the
// attempt budget, or the context is cancelled. The delay between attempts
// grows by Multiplier up to MaxDelay.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if IsPermanent(lastErr) {
			return lastErr
		}
		if attempt == p.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("aborted after %d attempts: %w (last error: %v)", attempt, ctx.Err(), lastErr)
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", p.Attempts, lastErr)
}

// PermanentError marks an error as not worth retrying.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries the permanent marker.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
