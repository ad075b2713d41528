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

// Package quotas bounds how fast pollers may hit the remote service.
package quotas

import (
	"context"

	"golang.org/x/time/rate"
)

// RateThrottler enforces a maximum number of polls per second, blocking
// callers that exceed it until a token becomes available.
type RateThrottler interface {
	// Wait blocks until a single call is permitted or ctx is done.
	Wait(ctx context.Context) error
	// Allow reports, without blocking, whether a call is currently permitted.
	Allow() bool
	// SetRate updates the allowed rate for calls made after it; a caller
	// already blocked in Wait keeps the delay it reserved under the old rate.
	SetRate(ratePerSecond float64)
}

type rateThrottler struct {
	limiter *rate.Limiter
}

// NewRateThrottler returns a RateThrottler allowing up to ratePerSecond
// calls per second, with a burst of burstSize.
func NewRateThrottler(ratePerSecond float64, burstSize int) RateThrottler {
	return &rateThrottler{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burstSize)}
}

func (t *rateThrottler) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

func (t *rateThrottler) Allow() bool {
	return t.limiter.Allow()
}

func (t *rateThrottler) SetRate(ratePerSecond float64) {
	t.limiter.SetLimit(rate.Limit(ratePerSecond))
}
