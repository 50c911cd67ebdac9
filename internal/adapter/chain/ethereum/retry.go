package ethereum

import (
	"context"
	"time"
)

// withRetry runs op up to attempts times with exponential backoff starting
// at baseDelay. The last error is returned when all attempts fail.
func withRetry[T any](ctx context.Context, attempts int, baseDelay time.Duration, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return zero, lastErr
}
