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

package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meiliang86/cadence-client/common/backoff"
	"github.com/meiliang86/cadence-client/common/clock"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// MaximumPageSize bounds a single GetWorkflowExecutionHistory page.
const MaximumPageSize = 10000

// ErrHistoryPaginationExpired is returned by Next when fetching the next
// history page would run past the decision task's TaskStartToCloseTimeout.
var ErrHistoryPaginationExpired = errors.New("history pagination time exceeded task start-to-close timeout")

// HistoryIterator lazily walks a workflow execution's history, fetching
// additional pages from the service on demand as the in-hand page runs out.
// One instance is scoped to a single decision task and is not safe for
// concurrent use.
type HistoryIterator struct {
	client        rpc.ServiceClient
	timeSource    clock.TimeSource
	domain        string
	execution     shared.WorkflowExecution
	startedEvent  *shared.WorkflowExecutionStartedEventAttributes
	deadline      time.Time
	events        []shared.HistoryEvent
	pos           int
	nextPageToken []byte
	scope         metrics.Scope
}

func scopeOrNoop(scope metrics.Scope) metrics.Scope {
	if scope == nil {
		return metrics.NoopScope
	}
	return scope
}

// NewHistoryIterator builds a HistoryIterator over a live decision task: the
// task's own History slice is the first page, and any further pages are
// fetched from client as needed, bounded by the task's
// TaskStartToCloseTimeoutSeconds.
func NewHistoryIterator(task *shared.DecisionTask, client rpc.ServiceClient, domain string, timeSource clock.TimeSource, scope metrics.Scope) (*HistoryIterator, error) {
	if len(task.History) == 0 {
		return nil, errors.New("decision task history is empty")
	}
	started, ok := task.History[0].Attributes.(shared.WorkflowExecutionStartedEventAttributes)
	if !ok {
		return nil, fmt.Errorf("first event in the history is not WorkflowExecutionStarted, but %s", task.History[0].EventType)
	}

	it := &HistoryIterator{
		client:        client,
		timeSource:    timeSource,
		domain:        domain,
		execution:     task.WorkflowExecution,
		startedEvent:  &started,
		deadline:      timeSource.Now().Add(time.Duration(task.TaskStartToCloseTimeoutSeconds) * time.Second),
		events:        task.History,
		nextPageToken: task.NextPageToken,
		scope:         scopeOrNoop(scope),
	}
	return it, nil
}

// NewReplayHistoryIterator builds a HistoryIterator over an already-fetched,
// complete event sequence with no polling involved — the "replay-query"
// path used to answer a query against a full history the caller already
// holds. StartedEventID and PreviousStartedEventID on the synthesized task
// are both set to MaxInt64, mirroring the offline replay convention: there
// is no real decision task to bound against.
func NewReplayHistoryIterator(execution shared.WorkflowExecution, events []shared.HistoryEvent, scope metrics.Scope) (*HistoryIterator, *shared.DecisionTask, error) {
	if len(events) == 0 {
		return nil, nil, errors.New("history is empty")
	}
	started, ok := events[0].Attributes.(shared.WorkflowExecutionStartedEventAttributes)
	if !ok {
		return nil, nil, fmt.Errorf("first history event is not WorkflowExecutionStarted, but %s", events[0].EventType)
	}

	it := &HistoryIterator{
		domain:       "",
		execution:    execution,
		startedEvent: &started,
		events:       events,
		scope:        scopeOrNoop(scope),
	}
	task := &shared.DecisionTask{
		WorkflowExecution:      execution,
		WorkflowType:           started.WorkflowType,
		StartedEventID:         maxInt64,
		PreviousStartedEventID: maxInt64,
	}
	return it, task, nil
}

const maxInt64 = int64(^uint64(0) >> 1)

// StartedEvent returns the WorkflowExecutionStarted event attributes that
// opened this history, always present as the first event.
func (it *HistoryIterator) StartedEvent() *shared.WorkflowExecutionStartedEventAttributes {
	return it.startedEvent
}

// HasNext reports whether another event is available without blocking on a
// network call — it does not by itself distinguish "next page must be
// fetched" from "truly exhausted"; call Next and inspect its error to learn
// that.
func (it *HistoryIterator) HasNext() bool {
	return it.pos < len(it.events) || len(it.nextPageToken) > 0
}

// Next returns the next history event, transparently fetching another page
// from the service if the current page is exhausted. Returns
// ErrHistoryPaginationExpired if fetching a page would exceed the task's
// deadline, or (false, nil, nil) once history is genuinely exhausted.
func (it *HistoryIterator) Next(ctx context.Context) (shared.HistoryEvent, bool, error) {
	if it.pos < len(it.events) {
		e := it.events[it.pos]
		it.pos++
		return e, true, nil
	}
	if len(it.nextPageToken) == 0 {
		return shared.HistoryEvent{}, false, nil
	}
	if it.client == nil {
		return shared.HistoryEvent{}, false, errors.New("history exhausted but more pages remain and no service client was configured to fetch them")
	}

	if err := it.fetchNextPage(ctx); err != nil {
		return shared.HistoryEvent{}, false, err
	}
	if it.pos >= len(it.events) {
		return shared.HistoryEvent{}, false, nil
	}
	e := it.events[it.pos]
	it.pos++
	return e, true, nil
}

func (it *HistoryIterator) fetchNextPage(ctx context.Context) error {
	remaining := it.deadline.Sub(it.timeSource.Now())
	if remaining <= 0 {
		return ErrHistoryPaginationExpired
	}

	policy := backoff.NewExponentialRetryPolicy(50 * time.Millisecond).
		WithMaximumInterval(time.Second).
		WithExpirationInterval(remaining)

	it.scope.IncCounter(metrics.WorkflowGetHistoryCounter)
	sw := it.scope.StartTimer(metrics.WorkflowGetHistoryLatency)

	var resp *rpc.GetWorkflowExecutionHistoryResponse
	op := func() error {
		r, err := it.client.GetWorkflowExecutionHistory(ctx, &rpc.GetWorkflowExecutionHistoryRequest{
			Domain:        it.domain,
			Execution:     it.execution,
			MaxPageSize:   MaximumPageSize,
			NextPageToken: it.nextPageToken,
		})
		if err != nil {
			return err
		}
		resp = r
		return nil
	}
	err := backoff.RetryWithSource(ctx, op, policy, rpc.IsTransient, it.timeSource)
	sw.Stop()
	if err != nil {
		it.scope.IncCounter(metrics.WorkflowGetHistoryFailed)
		return err
	}
	it.scope.IncCounter(metrics.WorkflowGetHistorySucceed)

	it.events = resp.History
	it.pos = 0
	it.nextPageToken = resp.NextPageToken
	return nil
}
