package watch

import (
	"context"
	"math/rand"
	"time"
)

// maxRetryDelay caps the exponential backoff so a long RPC outage cannot
// stall a single fetch far past the poll interval.
const maxRetryDelay = 10 * time.Second

// withRetry runs fn up to maxRetries+1 times with capped exponential
// backoff. Delays carry up to 25% jitter so the concurrent per-id fetches
// do not retry in lockstep after a shared RPC failure.
func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		delay := baseDelay << attempt
		if delay <= 0 || delay > maxRetryDelay {
			delay = maxRetryDelay
		}
		delay += time.Duration(rand.Int63n(int64(delay/4) + 1))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
