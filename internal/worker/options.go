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

package worker

import (
	"github.com/meiliang86/cadence-client/common/log"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// SingleWorkerOptions configures one WorkflowWorker or ActivityWorker
// instance — the Go analogue of the teacher's SingleWorkerOptions, one
// level below the worker façade's combined Options.
type SingleWorkerOptions struct {
	Identity string

	PollerOptions PollerOptions

	// MaxConcurrentTaskExecutionSize bounds how many tasks this worker
	// processes at once via a semaphore acquired by the poll goroutine
	// itself before the blocking handle call — see the concurrency model
	// note on why there is no separate executor pool. Zero means
	// unbounded.
	MaxConcurrentTaskExecutionSize int64

	ReportCompletionRetryOptions shared.RetryOptions
	ReportFailureRetryOptions    shared.RetryOptions

	MetricsScope metrics.Scope
	Logger       log.Logger

	// EnableLoggingInReplay controls whether workflow-code log statements
	// are emitted during history replay as opposed to only on the live
	// decision; the decision dispatcher (out of scope here) is the actual
	// consumer of this flag, which exists on this struct purely so it can
	// be threaded through from the worker façade.
	EnableLoggingInReplay bool

	// DataConverter is an opaque extension point for payload
	// serialization; its internals are out of scope, but downstream
	// consumers wiring concrete converters need the field to exist.
	DataConverter interface{}
}

func (o SingleWorkerOptions) scope() metrics.Scope {
	if o.MetricsScope == nil {
		return metrics.NoopScope
	}
	return o.MetricsScope
}

func (o SingleWorkerOptions) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}
