package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// RetryPolicy retries a call a bounded number of times with a constant delay between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: defaultMaxAttempts, Delay: defaultRetryDelay}
}

// Do runs fn until it succeeds or the attempts run out. It reports how many attempts were made
// and, on failure, the error of the last one. When ctx ends while waiting for the next attempt the
// returned error wraps both the context error and the last attempt's error.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context, attempt int) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	delay := p.Delay
	if delay <= 0 {
		delay = time.Nanosecond // go-retry rejects non-positive constants
	}

	b := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewConstant(delay))

	attempts := 0
	var lastErr error
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if err := fn(ctx, attempts); err != nil {
			lastErr = err
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil && lastErr != nil && !errors.Is(err, lastErr) {
		return attempts, fmt.Errorf("%w (last attempt: %w)", err, lastErr)
	}
	return attempts, err
}
