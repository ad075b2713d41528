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
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/replay"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// DecisionTaskResult is what a DecisionTaskHandler hands back to
// WorkflowWorker for reporting. Exactly one of the three request fields
// should be set. RequestRetryOptions is carried on the result but
// WorkflowWorker does not read it: every response is sent through the
// worker's service client with that client's own retry behaviour.
type DecisionTaskResult struct {
	TaskCompleted       *rpc.RespondDecisionTaskCompletedRequest
	TaskFailed          *rpc.RespondDecisionTaskFailedRequest
	QueryCompleted      *rpc.RespondQueryTaskCompletedRequest
	RequestRetryOptions *shared.RetryOptions
}

// DecisionTaskHandler is the deterministic-replay dispatcher's contract with
// the worker core: given a task's full event history via a HistoryIterator,
// deterministically replay it and produce the next batch of decisions (or a
// query result). Its internals — how user workflow code is paused and
// resumed between events — are a separate, opaque subsystem; the worker
// core only needs this seam.
//
// This collapses the Java DecisionTaskWithHistoryIterator wrapper into two
// explicit arguments: the still-raw task (for its token, query, and
// timeouts) and the iterator built from it.
type DecisionTaskHandler interface {
	// IsAnyTypeSupported reports whether at least one workflow type is
	// registered; a worker with none skips starting its Poller entirely.
	IsAnyTypeSupported() bool
	HandleDecisionTask(task *shared.DecisionTask, history *replay.HistoryIterator) (*DecisionTaskResult, error)
}

// ActivityTaskResult is what an ActivityTaskHandler hands back to
// ActivityWorker for reporting. Exactly one of the three request fields
// should be set.
type ActivityTaskResult struct {
	TaskCompleted       *rpc.RespondActivityTaskCompletedRequest
	TaskFailed          *rpc.RespondActivityTaskFailedRequest
	TaskCancelled       *rpc.RespondActivityTaskCanceledRequest
	RequestRetryOptions *shared.RetryOptions
}

// ActivityCancelledPanic is the value activity dispatch code panics with to
// signal that the running activity observed a cooperative cancellation.
// ActivityWorker recovers exactly this panic value around Handle and
// reports it via RespondActivityTaskCanceled instead of letting it fail the
// task, mirroring ActivityWorker.java catching CancellationException around
// the same call — Go has no checked-exception equivalent, so the boundary
// is a typed panic recovered at exactly one call site instead.
type ActivityCancelledPanic struct {
	Details []byte
}

// ActivityTaskHandler is the activity dispatcher's contract with the worker
// core: given a single activity task, invoke the registered implementation
// and report its outcome. Its internals — argument deserialization, type
// lookup, the implementation call itself — are out of scope; this is only
// the seam.
type ActivityTaskHandler interface {
	// IsAnyTypeSupported reports whether at least one activity type is
	// registered; a worker with none skips starting its Poller entirely.
	IsAnyTypeSupported() bool
	Handle(task *shared.ActivityTask, scope metrics.Scope) (*ActivityTaskResult, error)
}
