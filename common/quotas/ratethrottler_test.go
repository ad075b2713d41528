package quotas

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateThrottler_AllowsWithinBurst(t *testing.T) {
	th := NewRateThrottler(1, 3)
	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.False(t, th.Allow())
}

func TestRateThrottler_WaitUnblocksWithinDeadline(t *testing.T) {
	th := NewRateThrottler(1000, 1)
	assert.True(t, th.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := th.Wait(ctx)
	assert.NoError(t, err)
}

func TestRateThrottler_WaitRespectsContextCancellation(t *testing.T) {
	th := NewRateThrottler(0.001, 1)
	assert.True(t, th.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := th.Wait(ctx)
	require.Error(t, err)
}

func TestRateThrottler_SetRate(t *testing.T) {
	th := NewRateThrottler(1, 1)
	assert.True(t, th.Allow())
	assert.False(t, th.Allow())

	th.SetRate(1000)
	time.Sleep(5 * time.Millisecond)
	assert.True(t, th.Allow())
}
