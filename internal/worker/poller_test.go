package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_RunsTaskRepeatedly(t *testing.T) {
	var calls atomic.Int64
	task := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}

	p := NewPoller(PollerOptions{PollThreadCount: 2}, "test-identity", task, nil, nil)
	p.Start()
	require.Eventually(t, func() bool { return calls.Load() > 5 }, time.Second, time.Millisecond)
	require.True(t, p.ShutdownAndAwaitTermination(time.Second))
}

func TestPoller_StartIsIdempotent(t *testing.T) {
	var starts atomic.Int64
	task := func(ctx context.Context) error {
		starts.Add(1)
		<-ctx.Done()
		return ctx.Err()
	}
	p := NewPoller(PollerOptions{PollThreadCount: 1}, "id", task, nil, nil)
	p.Start()
	p.Start()
	require.Eventually(t, func() bool { return starts.Load() >= 1 }, time.Second, time.Millisecond)
	assert.True(t, p.IsRunning())
	p.ShutdownAndAwaitTermination(time.Second)
	assert.False(t, p.IsRunning())
}

func TestPoller_BackoffOnFailure(t *testing.T) {
	var calls atomic.Int64
	task := func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}
	p := NewPoller(PollerOptions{
		PollThreadCount:            1,
		PollBackoffInitialInterval: 50 * time.Millisecond,
		PollBackoffMaximumInterval: 50 * time.Millisecond,
		PollBackoffCoefficient:     2,
	}, "id", task, nil, nil)
	p.Start()
	time.Sleep(120 * time.Millisecond)
	p.ShutdownAndAwaitTermination(time.Second)
	// With a 50ms floor backoff and ~120ms elapsed, at most a handful of
	// calls should have gone out — this is a loose bound, not exact timing.
	assert.Less(t, calls.Load(), int64(10))
}

func TestPoller_SuspendResume(t *testing.T) {
	var calls atomic.Int64
	task := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	p := NewPoller(PollerOptions{PollThreadCount: 1}, "id", task, nil, nil)
	p.Start()
	require.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, time.Millisecond)

	p.SuspendPolling()
	time.Sleep(20 * time.Millisecond)
	afterSuspend := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, afterSuspend, calls.Load(), "no polling should occur while suspended")

	p.ResumePolling()
	require.Eventually(t, func() bool { return calls.Load() > afterSuspend }, time.Second, time.Millisecond)
	p.ShutdownAndAwaitTermination(time.Second)
}

func TestPoller_ShutdownUnblocksSuspendedGoroutine(t *testing.T) {
	task := func(ctx context.Context) error { return nil }
	p := NewPoller(PollerOptions{PollThreadCount: 1}, "id", task, nil, nil)
	p.Start()
	p.SuspendPolling()
	assert.True(t, p.ShutdownAndAwaitTermination(time.Second))
}

func TestPoller_AwaitTerminationTimesOutWithoutShutdown(t *testing.T) {
	task := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	p := NewPoller(PollerOptions{PollThreadCount: 1}, "id", task, nil, nil)
	p.Start()
	assert.False(t, p.AwaitTermination(20*time.Millisecond))
	p.ShutdownAndAwaitTermination(time.Second)
}
