package scrape

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays for transport retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retry invokes fn until it succeeds or the delays are exhausted
// (len(delays)+1 total attempts). An empty delays slice means a single
// attempt with no retry. Context cancellation stops waiting immediately.
func retry[T any](ctx context.Context, delays []time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= len(delays); attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
