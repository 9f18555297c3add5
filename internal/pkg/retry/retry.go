package retry

import (
	"context"
	"errors"
	"time"
)

// Do runs fn up to attempts times, doubling the delay between attempts.
// Context and unretryable errors stop the loop immediately. Used around
// store reads during batch report generation, where a transient failure
// for one employee must not corrupt the whole batch.
func Do(ctx context.Context, attempts int, baseDelay time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := baseDelay
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}
	return err
}
