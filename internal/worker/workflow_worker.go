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
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/meiliang86/cadence-client/common/clock"
	"github.com/meiliang86/cadence-client/common/log"
	"github.com/meiliang86/cadence-client/common/log/tag"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/replay"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// WorkflowWorker wires a DecisionTaskHandler around a Poller polling for
// decision tasks: poll, build a HistoryIterator, hand both to the handler,
// report the result. Grounded on WorkflowWorker.java.
type WorkflowWorker struct {
	service  rpc.ServiceClient
	domain   string
	taskList string
	options  SingleWorkerOptions
	handler  DecisionTaskHandler

	sem    *semaphore.Weighted
	poller *Poller
}

// NewWorkflowWorker returns a WorkflowWorker that has not yet been started.
func NewWorkflowWorker(service rpc.ServiceClient, domain, taskList string, options SingleWorkerOptions, handler DecisionTaskHandler) *WorkflowWorker {
	return &WorkflowWorker{
		service:  service,
		domain:   domain,
		taskList: taskList,
		options:  options,
		handler:  handler,
		sem:      semaphore.NewWeighted(weightOf(options.MaxConcurrentTaskExecutionSize)),
	}
}

func weightOf(configured int64) int64 {
	if configured <= 0 {
		return math.MaxInt64
	}
	return configured
}

// Start launches the underlying Poller, unless the handler supports no
// workflow types at all.
func (w *WorkflowWorker) Start() {
	if !w.handler.IsAnyTypeSupported() {
		return
	}
	w.poller = NewPoller(w.options.PollerOptions, w.options.Identity, w.pollAndHandle, w.options.scope(), w.options.logger())
	w.poller.Start()
	w.options.scope().IncCounter(metrics.WorkerStartCounter)
}

func (w *WorkflowWorker) Shutdown() {
	if w.poller != nil {
		w.poller.Shutdown()
	}
}

func (w *WorkflowWorker) ShutdownNow() {
	if w.poller != nil {
		w.poller.ShutdownNow()
	}
}

func (w *WorkflowWorker) AwaitTermination(timeout time.Duration) bool {
	if w.poller == nil {
		return true
	}
	return w.poller.AwaitTermination(timeout)
}

func (w *WorkflowWorker) ShutdownAndAwaitTermination(timeout time.Duration) bool {
	if w.poller == nil {
		return true
	}
	return w.poller.ShutdownAndAwaitTermination(timeout)
}

func (w *WorkflowWorker) IsRunning() bool {
	return w.poller != nil && w.poller.IsRunning()
}

func (w *WorkflowWorker) SuspendPolling() {
	if w.poller != nil {
		w.poller.SuspendPolling()
	}
}

func (w *WorkflowWorker) ResumePolling() {
	if w.poller != nil {
		w.poller.ResumePolling()
	}
}

func (w *WorkflowWorker) pollAndHandle(ctx context.Context) error {
	scope := w.options.scope()
	logger := log.With(w.options.logger(), tag.Domain(w.domain), tag.TaskListName(w.taskList))

	scope.IncCounter(metrics.DecisionPollCounter)
	sw := scope.StartTimer(metrics.DecisionPollLatency)
	task, err := w.service.PollForDecisionTask(ctx, w.domain, w.taskList, w.options.Identity)
	sw.Stop()
	if err != nil {
		if rpc.IsTransient(err) {
			scope.IncCounter(metrics.DecisionPollTransientFailedCounter)
		} else {
			scope.IncCounter(metrics.DecisionPollFailedCounter)
		}
		return err
	}
	if task == nil || len(task.TaskToken) == 0 {
		scope.IncCounter(metrics.DecisionPollNoTaskCounter)
		return nil
	}
	scope.IncCounter(metrics.DecisionPollSucceedCounter)
	logger = log.With(logger, tag.WorkflowID(task.WorkflowExecution.WorkflowID), tag.RunID(task.WorkflowExecution.RunID))

	if err := w.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer w.sem.Release(1)

	return w.handleAndReport(ctx, task, scope, logger)
}

func (w *WorkflowWorker) handleAndReport(ctx context.Context, task *shared.DecisionTask, scope metrics.Scope, logger log.Logger) error {
	it, err := replay.NewHistoryIterator(task, w.service, w.domain, clock.NewRealTimeSource(), scope)
	if err != nil {
		logger.Error("failed to build history iterator", tag.Error(err))
		if reportErr := w.reportFailure(ctx, task.TaskToken, err); reportErr != nil {
			return reportErr
		}
		return err
	}

	sw := scope.StartTimer(metrics.DecisionExecutionLatency)
	result, err := w.handler.HandleDecisionTask(task, it)
	sw.Stop()
	if err != nil {
		logger.Error("decision task handler failed", tag.Error(err))
		if reportErr := w.reportFailure(ctx, task.TaskToken, err); reportErr != nil {
			return reportErr
		}
		return err
	}

	sw = scope.StartTimer(metrics.DecisionResponseLatency)
	err = w.sendReply(ctx, task.TaskToken, result)
	sw.Stop()
	if err != nil {
		return err
	}
	scope.IncCounter(metrics.DecisionTaskCompleted)
	return nil
}

func (w *WorkflowWorker) sendReply(ctx context.Context, taskToken []byte, result *DecisionTaskResult) error {
	switch {
	case result.TaskCompleted != nil:
		result.TaskCompleted.TaskToken = taskToken
		result.TaskCompleted.Identity = w.options.Identity
		return w.service.RespondDecisionTaskCompleted(ctx, result.TaskCompleted)
	case result.TaskFailed != nil:
		result.TaskFailed.TaskToken = taskToken
		result.TaskFailed.Identity = w.options.Identity
		return w.service.RespondDecisionTaskFailed(ctx, result.TaskFailed)
	case result.QueryCompleted != nil:
		result.QueryCompleted.TaskToken = taskToken
		return w.service.RespondQueryTaskCompleted(ctx, result.QueryCompleted)
	default:
		return fmt.Errorf("decision task handler returned an empty result")
	}
}

func (w *WorkflowWorker) reportFailure(ctx context.Context, taskToken []byte, cause error) error {
	return w.service.RespondDecisionTaskFailed(ctx, &rpc.RespondDecisionTaskFailedRequest{
		TaskToken: taskToken,
		Cause:     fmt.Sprintf("%T", cause),
		Details:   []byte(cause.Error()),
		Identity:  w.options.Identity,
	})
}

// QueryWorkflowExecution replays execution's full history locally and runs
// queryType against it, without going through the poller. Grounded on
// WorkflowWorker.java's queryWorkflowExecution, which is the only caller of
// the offline replay-query HistoryIterator variant.
func (w *WorkflowWorker) QueryWorkflowExecution(ctx context.Context, execution shared.WorkflowExecution, queryType string, args []byte) ([]byte, error) {
	scope := w.options.scope()
	events, err := fetchFullHistory(ctx, w.service, w.domain, execution, scope)
	if err != nil {
		return nil, err
	}

	it, task, err := replay.NewReplayHistoryIterator(execution, events, scope)
	if err != nil {
		return nil, err
	}
	task.Query = &shared.WorkflowQuery{QueryType: queryType, QueryArgs: args}

	result, err := w.handler.HandleDecisionTask(task, it)
	if err != nil {
		return nil, err
	}
	if result.QueryCompleted == nil {
		return nil, fmt.Errorf("query returned an unexpected response: %+v", result)
	}
	if result.QueryCompleted.ErrorMessage != "" {
		return nil, fmt.Errorf("query failed: %s", result.QueryCompleted.ErrorMessage)
	}
	return result.QueryCompleted.Result, nil
}

// fetchFullHistory pages through GetWorkflowExecutionHistory until
// exhausted, for the offline replay-query path where there is no decision
// task already carrying a first page. Grounded on WorkflowExecutionUtils.getHistory.
func fetchFullHistory(ctx context.Context, client rpc.ServiceClient, domain string, execution shared.WorkflowExecution, scope metrics.Scope) ([]shared.HistoryEvent, error) {
	var events []shared.HistoryEvent
	var nextPageToken []byte
	for {
		scope.IncCounter(metrics.WorkflowGetHistoryCounter)
		sw := scope.StartTimer(metrics.WorkflowGetHistoryLatency)
		resp, err := client.GetWorkflowExecutionHistory(ctx, &rpc.GetWorkflowExecutionHistoryRequest{
			Domain:        domain,
			Execution:     execution,
			MaxPageSize:   replay.MaximumPageSize,
			NextPageToken: nextPageToken,
		})
		sw.Stop()
		if err != nil {
			scope.IncCounter(metrics.WorkflowGetHistoryFailed)
			return nil, err
		}
		scope.IncCounter(metrics.WorkflowGetHistorySucceed)
		events = append(events, resp.History...)
		if len(resp.NextPageToken) == 0 {
			return events, nil
		}
		nextPageToken = resp.NextPageToken
	}
}
