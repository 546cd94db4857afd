package sync

import (
	"context"
	"fmt"
	"time"
)

// retry runs fn up to attempts times, sleeping delay between tries and
// honoring context cancellation during the sleep. The returned error wraps the
// last failure with the attempt count.
func retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
		v, err := fn()
		if err == nil {
			return v, nil
		}
		last = err
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, last)
}
