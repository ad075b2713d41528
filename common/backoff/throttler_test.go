package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffThrottler_NoFailures(t *testing.T) {
	th := NewBackoffThrottler(time.Second, 10*time.Second, 2.0)
	assert.Equal(t, time.Duration(0), th.GetSleepTime())
}

func TestBackoffThrottler_ExponentialGrowth(t *testing.T) {
	th := NewBackoffThrottler(time.Second, 100*time.Second, 2.0)

	th.Failure()
	assert.Equal(t, time.Second, th.GetSleepTime())

	th.Failure()
	assert.Equal(t, 2*time.Second, th.GetSleepTime())

	th.Failure()
	assert.Equal(t, 4*time.Second, th.GetSleepTime())
}

func TestBackoffThrottler_CapsAtMaximum(t *testing.T) {
	th := NewBackoffThrottler(time.Second, 3*time.Second, 2.0)

	for i := 0; i < 5; i++ {
		th.Failure()
	}
	assert.Equal(t, 3*time.Second, th.GetSleepTime())
}

func TestBackoffThrottler_SuccessResets(t *testing.T) {
	th := NewBackoffThrottler(time.Second, 10*time.Second, 2.0)

	th.Failure()
	th.Failure()
	assert.NotEqual(t, time.Duration(0), th.GetSleepTime())

	th.Success()
	assert.Equal(t, time.Duration(0), th.GetSleepTime())
}
