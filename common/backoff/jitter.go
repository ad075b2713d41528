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
	"math/rand"
	"time"
)

// JitDuration returns a random duration in [(1-coefficient)*d, (1+coefficient)*d).
func JitDuration(d time.Duration, coefficient float64) time.Duration {
	validateCoefficient(coefficient)
	return time.Duration(JitInt64(d.Nanoseconds(), coefficient))
}

// JitInt64 returns a random value in [(1-coefficient)*n, (1+coefficient)*n).
func JitInt64(n int64, coefficient float64) int64 {
	validateCoefficient(coefficient)
	if n == 0 {
		return 0
	}
	base := int64(float64(n) * (1 - coefficient))
	spread := 2 * (n - base)
	if spread <= 0 {
		return base
	}
	return base + rand.Int63n(spread)
}

// JitFloat64 returns a random value in [(1-coefficient)*f, (1+coefficient)*f).
func JitFloat64(f float64, coefficient float64) float64 {
	validateCoefficient(coefficient)
	base := f * (1 - coefficient)
	spread := 2 * (f - base)
	return base + rand.Float64()*spread
}

func validateCoefficient(coefficient float64) {
	if coefficient < 0 || coefficient > 1 {
		panic("jitter coefficient must be within [0, 1]")
	}
}
