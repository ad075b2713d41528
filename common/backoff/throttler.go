// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package backoff

import (
	"math"
	"sync"
	"time"
)

// BackoffThrottler tracks consecutive poll failures for a single poller pool
// and hands back the delay the next poll attempt should wait before firing.
// Unlike ExponentialRetryPolicy it has no notion of attempt limits or
// expiration: it exists purely to slow a poller down while the remote is
// unhealthy, and to snap back to zero delay the instant a call succeeds.
type BackoffThrottler struct {
	mu                 sync.Mutex
	initialInterval    time.Duration
	maximumInterval    time.Duration
	backoffCoefficient float64
	consecutiveFailures int
}

// NewBackoffThrottler returns a BackoffThrottler with the given initial
// interval, maximum interval (0 = unbounded), and backoff coefficient.
func NewBackoffThrottler(initialInterval, maximumInterval time.Duration, backoffCoefficient float64) *BackoffThrottler {
	return &BackoffThrottler{
		initialInterval:    initialInterval,
		maximumInterval:    maximumInterval,
		backoffCoefficient: backoffCoefficient,
	}
}

// Success resets the failure count to zero.
func (t *BackoffThrottler) Success() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecutiveFailures = 0
}

// Failure increments the failure count.
func (t *BackoffThrottler) Failure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecutiveFailures++
}

// GetSleepTime returns how long the next poll should wait: zero while there
// have been no consecutive failures, otherwise
// initial * coefficient^(failures-1) capped at maximum.
func (t *BackoffThrottler) GetSleepTime() time.Duration {
	t.mu.Lock()
	failures := t.consecutiveFailures
	t.mu.Unlock()

	if failures <= 0 {
		return 0
	}

	delay := float64(t.initialInterval) * math.Pow(t.backoffCoefficient, float64(failures-1))
	if t.maximumInterval > 0 && delay > float64(t.maximumInterval) {
		delay = float64(t.maximumInterval)
	}
	return time.Duration(delay)
}
