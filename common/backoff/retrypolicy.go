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
	"math/rand"
	"time"

	"github.com/meiliang86/cadence-client/common/clock"
)

const (
	// NoInterval means no maximum/expiration bound is set.
	NoInterval = 0

	noMaximumAttempts = 0

	// done is returned by Retrier.NextBackOff to signal that no more
	// retries should be attempted.
	done time.Duration = -1
)

// Done is the sentinel duration Retrier.NextBackOff returns once the policy
// has exhausted its attempts or expiration window.
const Done = done

type (
	// RetryPolicy describes how much delay should occur for each retry and
	// how many retries are permitted for a given operation.
	RetryPolicy interface {
		ComputeNextDelay(elapsedTime time.Duration, numAttempts int) time.Duration
	}

	// Retrier is a stateful, single-use companion to a RetryPolicy: it
	// tracks the number of attempts made and the wall-clock start time so
	// callers only need to ask "what's my next backoff".
	Retrier interface {
		NextBackOff() time.Duration
		Reset()
	}

	// ExponentialRetryPolicy computes delays as initialInterval *
	// coefficient^attempt, capped by an optional maximum interval, up to an
	// optional maximum attempt count and expiration window.
	ExponentialRetryPolicy struct {
		initialInterval    time.Duration
		backoffCoefficient float64
		maximumInterval    time.Duration
		expirationInterval time.Duration
		maximumAttempts    int
	}

	retrier struct {
		policy       RetryPolicy
		timeSource   clock.TimeSource
		startTime    time.Time
		currAttempt  int
	}
)

// NewExponentialRetryPolicy returns a policy with the given initial interval
// and a default backoff coefficient of 2.0, no maximum interval, no maximum
// attempts, and no expiration.
func NewExponentialRetryPolicy(initialInterval time.Duration) *ExponentialRetryPolicy {
	return &ExponentialRetryPolicy{
		initialInterval:    initialInterval,
		backoffCoefficient: 2.0,
		maximumInterval:    NoInterval,
		expirationInterval: NoInterval,
		maximumAttempts:    noMaximumAttempts,
	}
}

// WithBackoffCoefficient sets the multiplier applied to the interval after
// every attempt.
func (p *ExponentialRetryPolicy) WithBackoffCoefficient(coefficient float64) *ExponentialRetryPolicy {
	p.backoffCoefficient = coefficient
	return p
}

// WithMaximumInterval caps the computed delay. Zero means unbounded.
func (p *ExponentialRetryPolicy) WithMaximumInterval(maximumInterval time.Duration) *ExponentialRetryPolicy {
	p.maximumInterval = maximumInterval
	return p
}

// WithExpirationInterval bounds the total elapsed retry time. Zero means unbounded.
func (p *ExponentialRetryPolicy) WithExpirationInterval(expirationInterval time.Duration) *ExponentialRetryPolicy {
	p.expirationInterval = expirationInterval
	return p
}

// WithMaximumAttempts bounds the number of attempts. Zero means unbounded.
func (p *ExponentialRetryPolicy) WithMaximumAttempts(maximumAttempts int) *ExponentialRetryPolicy {
	p.maximumAttempts = maximumAttempts
	return p
}

// ComputeNextDelay returns the jittered delay before the next attempt, or
// done if the policy's attempt or expiration bound has been reached.
func (p *ExponentialRetryPolicy) ComputeNextDelay(elapsedTime time.Duration, numAttempts int) time.Duration {
	if p.maximumAttempts != noMaximumAttempts && numAttempts >= p.maximumAttempts-1 {
		return done
	}

	nextInterval := float64(p.initialInterval) * math.Pow(p.backoffCoefficient, float64(numAttempts))
	if p.maximumInterval != NoInterval && nextInterval > float64(p.maximumInterval) {
		nextInterval = float64(p.maximumInterval)
	}
	if nextInterval <= 0 {
		return done
	}

	// Jitter downwards only, into [0.8*interval, interval), so the delay
	// never exceeds the maximum interval.
	jitterPortion := int64(0.2 * nextInterval)
	if jitterPortion < 1 {
		jitterPortion = 1
	}
	nextDuration := time.Duration(int64(0.8*nextInterval) + rand.Int63n(jitterPortion))

	if p.expirationInterval != NoInterval {
		deadline := p.expirationInterval
		if elapsedTime+nextDuration > deadline {
			if elapsedTime >= deadline {
				return done
			}
			// Clamp to whatever remains of the expiration window rather
			// than dropping the last partial retry.
			nextDuration = deadline - elapsedTime
		}
	}

	return nextDuration
}

// NewRetrier returns a Retrier that tracks attempts and elapsed time against
// timeSource, so tests can drive it with clock.EventTimeSource.
func NewRetrier(policy RetryPolicy, timeSource clock.TimeSource) Retrier {
	return &retrier{
		policy:     policy,
		timeSource: timeSource,
		startTime:  timeSource.Now(),
	}
}

func (r *retrier) NextBackOff() time.Duration {
	elapsed := r.timeSource.Now().Sub(r.startTime)
	next := r.policy.ComputeNextDelay(elapsed, r.currAttempt)
	if next != done {
		r.currAttempt++
	}
	return next
}

func (r *retrier) Reset() {
	r.startTime = r.timeSource.Now()
	r.currAttempt = 0
}
