// Package retry implements a fixed-attempt, fixed-delay retry policy.
package retry

import (
	"context"
	"time"
)

// Policy describes how many times an operation may be attempted and how
// long to pause between failed attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	return p
}

// Do runs fn up to p.MaxAttempts times, sleeping p.Delay between failed
// attempts. It returns the first success, or the last error once the
// attempt budget is spent. Context cancellation cuts the loop short.
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	p = p.withDefaults()

	var zero T
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		got, err := fn(ctx)
		if err == nil {
			return got, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return zero, lastErr
}

// DoWithFallback is Do, degraded: when every attempt fails it returns the
// given fallback value together with the final error for logging.
func DoWithFallback[T any](ctx context.Context, p Policy, fallback T, fn func(context.Context) (T, error)) (T, error) {
	got, err := Do(ctx, p, fn)
	if err != nil {
		return fallback, err
	}
	return got, nil
}
