package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliang86/cadence-client/common/clock"
)

func createPolicy(initialInterval time.Duration) *ExponentialRetryPolicy {
	return NewExponentialRetryPolicy(initialInterval).
		WithBackoffCoefficient(2).
		WithMaximumInterval(NoInterval).
		WithExpirationInterval(NoInterval).
		WithMaximumAttempts(noMaximumAttempts)
}

func nextBackoffRange(expected time.Duration) (time.Duration, time.Duration) {
	return time.Duration(0.8 * float64(expected)), expected
}

func TestExponentialRetryPolicy_MaximumInterval(t *testing.T) {
	policy := createPolicy(time.Second).WithMaximumInterval(10 * time.Second)
	source := clock.NewEventTimeSource()
	r := NewRetrier(policy, source)

	expected := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	for _, exp := range expected {
		min, max := nextBackoffRange(exp)
		next := r.NextBackOff()
		assert.GreaterOrEqual(t, next, min)
		assert.Less(t, next, max)
		source.Advance(next)
	}
}

func TestExponentialRetryPolicy_MaximumAttempts(t *testing.T) {
	maxAttempts := 5
	policy := createPolicy(time.Second).WithMaximumAttempts(maxAttempts)
	source := clock.NewEventTimeSource()
	r := NewRetrier(policy, source)

	for i := 0; i < maxAttempts-1; i++ {
		next := r.NextBackOff()
		require.NotEqual(t, Done, next)
		source.Advance(next)
	}
	assert.Equal(t, Done, r.NextBackOff())
}

func TestExponentialRetryPolicy_ExpirationInterval(t *testing.T) {
	policy := createPolicy(2 * time.Second).WithExpirationInterval(5 * time.Minute)
	source := clock.NewEventTimeSource()
	r := NewRetrier(policy, source)

	source.Advance(6 * time.Minute)
	assert.Equal(t, Done, r.NextBackOff())
}

func TestExponentialRetryPolicy_BackoffCoefficientOne(t *testing.T) {
	policy := createPolicy(2 * time.Second).WithBackoffCoefficient(1.0)
	source := clock.NewEventTimeSource()
	r := NewRetrier(policy, source)

	min, max := nextBackoffRange(2 * time.Second)
	for i := 0; i < 10; i++ {
		next := r.NextBackOff()
		assert.GreaterOrEqual(t, next, min)
		assert.Less(t, next, max)
	}
}

func TestRetrier_Reset(t *testing.T) {
	policy := createPolicy(time.Second).WithMaximumAttempts(3)
	source := clock.NewEventTimeSource()
	r := NewRetrier(policy, source)

	first := r.NextBackOff()
	require.NotEqual(t, Done, first)
	source.Advance(first)
	second := r.NextBackOff()
	require.NotEqual(t, Done, second)
	source.Advance(second)
	require.Equal(t, Done, r.NextBackOff())

	r.Reset()
	assert.NotEqual(t, Done, r.NextBackOff())
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	source := clock.NewEventTimeSource()
	policy := createPolicy(time.Millisecond).WithMaximumInterval(10 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- RetryWithSource(context.Background(), op, policy, nil, source) }()

	// Drain: since op() runs synchronously inside RetryWithSource before
	// sleeping, advancing the fake clock unblocks the pending timer.
	for i := 0; i < 3; i++ {
		time.Sleep(time.Millisecond)
		source.Advance(10 * time.Millisecond)
	}

	err := <-done
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsWhenNotRetryable(t *testing.T) {
	sentinel := errors.New("permanent")
	attempts := 0
	op := func() error {
		attempts++
		return sentinel
	}

	err := Retry(context.Background(), op, createPolicy(time.Millisecond), func(error) bool { return false })
	assert.Equal(t, sentinel, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := func() error { return errors.New("fails") }
	err := Retry(ctx, op, createPolicy(time.Minute), nil)
	assert.Equal(t, context.Canceled, err)
}
