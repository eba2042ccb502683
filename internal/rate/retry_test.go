package rate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_StopsOnFirstSuccess(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}

	attempts, err := p.Do(context.Background(), func(context.Context, int) error { return nil })

	require.NoError(t, err)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicy_ReturnsLastError(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: time.Millisecond}
	var seen []int

	attempts, err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		seen = append(seen, attempt)
		return fmt.Errorf("attempt %d", attempt)
	})

	require.EqualError(t, err, "attempt 3")
	require.Equal(t, 3, attempts)
	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestRetryPolicy_WaitsBetweenAttempts(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: 20 * time.Millisecond}

	started := time.Now()
	_, _ = p.Do(context.Background(), func(context.Context, int) error { return errors.New("boom") })

	require.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
}

func TestRetryPolicy_ZeroValuesStillAttemptOnce(t *testing.T) {
	attempts, err := RetryPolicy{}.Do(context.Background(), func(context.Context, int) error { return errors.New("boom") })

	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicy_CanceledContextStopsWaiting(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	boom := errors.New("boom")

	attempts, err := p.Do(ctx, func(context.Context, int) error {
		cancel()
		return boom
	})

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicy_DeadlineDuringWaitKeepsLastError(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, Delay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	upstream := errors.New("upstream 503")

	attempts, err := p.Do(ctx, func(context.Context, int) error { return upstream })

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, upstream)
	require.Equal(t, 1, attempts)
}

func TestRetryPolicy_AttemptReturningContextErrorIsNotWrappedTwice(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 2, Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	_, err := p.Do(ctx, func(ctx context.Context, _ int) error {
		cancel()
		return ctx.Err()
	})

	require.Equal(t, context.Canceled, err)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	require.Equal(t, 3, p.MaxAttempts)
	require.Equal(t, 2*time.Second, p.Delay)
}
