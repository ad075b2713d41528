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

package rpc

import (
	"fmt"
	"math"
	"time"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// defaultMaximumIntervalMultiplier bounds the computed sleep at
// initialInterval * 100 when RetryOptions.MaximumInterval is left unset.
const defaultMaximumIntervalMultiplier = 100

// causeOf unwraps one level of ActivityFailure/ChildWorkflowFailure to reach
// the error the failed operation actually raised, matching
// shouldRethrow's `e = e.getCause()` step.
func causeOf(err error) error {
	switch e := err.(type) {
	case *shared.ActivityFailure:
		return e.Cause
	case *shared.ChildWorkflowFailure:
		return e.Cause
	default:
		return err
	}
}

// errorKind identifies an error for RetryOptions.DoNotRetry matching. Go has
// no exact analogue of Java's per-exception class list, so the concrete Go
// type name stands in for it.
func errorKind(err error) string {
	return fmt.Sprintf("%T", err)
}

// NextSleep computes the delay before retry attempt N+1, given the attempt
// that just failed (1-based) and the options in force:
// min(maxInterval, initial * coefficient^(attempt-1)), where maxInterval
// defaults to initial*100 when RetryOptions.MaximumInterval is zero and
// coefficient defaults to shared.DefaultBackoffCoefficient when zero.
func NextSleep(attempt int32, opts shared.RetryOptions) time.Duration {
	coefficient := opts.BackoffCoefficient
	if coefficient == 0 {
		coefficient = shared.DefaultBackoffCoefficient
	}

	sleep := float64(opts.InitialInterval) * math.Pow(coefficient, float64(attempt-1))

	maxInterval := opts.MaximumInterval
	if maxInterval == 0 {
		maxInterval = opts.InitialInterval * defaultMaximumIntervalMultiplier
	}
	if sleep > float64(maxInterval) {
		return maxInterval
	}
	return time.Duration(sleep)
}

// ShouldRethrow implements the retry policy evaluator shared by RPC retry
// and user-level workflow/activity retry: given the error from the attempt
// that just failed, the RetryOptions in force, that attempt number
// (1-based), the elapsed time since the first attempt, and the sleep about
// to be taken before the next attempt, it reports whether the caller should
// give up and rethrow instead of retrying.
func ShouldRethrow(err error, opts shared.RetryOptions, attempt int32, elapsed, nextSleep time.Duration) bool {
	cause := causeOf(err)

	kind := errorKind(cause)
	for _, doNotRetry := range opts.DoNotRetry {
		if doNotRetry == kind {
			return true
		}
	}

	if opts.MaximumAttempts != 0 && attempt >= opts.MaximumAttempts {
		return true
	}

	if opts.ExpirationInterval != 0 &&
		elapsed+nextSleep >= opts.ExpirationInterval &&
		attempt > opts.MinimumAttempts {
		return true
	}

	return false
}
