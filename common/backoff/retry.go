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
	"context"

	"github.com/meiliang86/cadence-client/common/clock"
)

type (
	// Operation is a unit of work that Retry will call repeatedly until it
	// succeeds or IsRetryable says to give up.
	Operation func() error

	// IsRetryable is consulted after every failed Operation call; returning
	// false stops the retry loop immediately regardless of the policy.
	IsRetryable func(error) bool
)

// Retry calls op, retrying on failure according to policy and sleeping on
// the wall clock between attempts, until op succeeds, isRetryable returns
// false, or the policy is exhausted. isRetryable may be nil to always retry.
func Retry(ctx context.Context, op Operation, policy RetryPolicy, isRetryable IsRetryable) error {
	return RetryWithSource(ctx, op, policy, isRetryable, clock.NewRealTimeSource())
}

// RetryWithSource is identical to Retry but lets the caller supply the
// clock.TimeSource used both to evaluate elapsed time against the policy and
// to sleep between attempts, so tests can drive it with clock.EventTimeSource
// without a real sleep.
func RetryWithSource(ctx context.Context, op Operation, policy RetryPolicy, isRetryable IsRetryable, timeSource clock.TimeSource) error {
	r := NewRetrier(policy, timeSource)
	for {
		err := op()
		if err == nil {
			return nil
		}
		if isRetryable != nil && !isRetryable(err) {
			return err
		}

		next := r.NextBackOff()
		if next == done {
			return err
		}

		fired := make(chan struct{})
		timer := timeSource.AfterFunc(next, func() { close(fired) })
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-fired:
		}
	}
}
