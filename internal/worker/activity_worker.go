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
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/meiliang86/cadence-client/common/log"
	"github.com/meiliang86/cadence-client/common/log/tag"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// ActivityWorker wires an ActivityTaskHandler around a Poller polling for
// activity tasks. Grounded on ActivityWorker.java.
type ActivityWorker struct {
	service  rpc.ServiceClient
	domain   string
	taskList string
	options  SingleWorkerOptions
	handler  ActivityTaskHandler

	sem    *semaphore.Weighted
	poller *Poller
}

// NewActivityWorker returns an ActivityWorker that has not yet been started.
func NewActivityWorker(service rpc.ServiceClient, domain, taskList string, options SingleWorkerOptions, handler ActivityTaskHandler) *ActivityWorker {
	return &ActivityWorker{
		service:  service,
		domain:   domain,
		taskList: taskList,
		options:  options,
		handler:  handler,
		sem:      semaphore.NewWeighted(weightOf(options.MaxConcurrentTaskExecutionSize)),
	}
}

func (w *ActivityWorker) Start() {
	if !w.handler.IsAnyTypeSupported() {
		return
	}
	w.poller = NewPoller(w.options.PollerOptions, w.options.Identity, w.pollAndHandle, w.options.scope(), w.options.logger())
	w.poller.Start()
	w.options.scope().IncCounter(metrics.WorkerStartCounter)
}

func (w *ActivityWorker) Shutdown() {
	if w.poller != nil {
		w.poller.Shutdown()
	}
}

func (w *ActivityWorker) ShutdownNow() {
	if w.poller != nil {
		w.poller.ShutdownNow()
	}
}

func (w *ActivityWorker) AwaitTermination(timeout time.Duration) bool {
	if w.poller == nil {
		return true
	}
	return w.poller.AwaitTermination(timeout)
}

func (w *ActivityWorker) ShutdownAndAwaitTermination(timeout time.Duration) bool {
	if w.poller == nil {
		return true
	}
	return w.poller.ShutdownAndAwaitTermination(timeout)
}

func (w *ActivityWorker) IsRunning() bool {
	return w.poller != nil && w.poller.IsRunning()
}

func (w *ActivityWorker) SuspendPolling() {
	if w.poller != nil {
		w.poller.SuspendPolling()
	}
}

func (w *ActivityWorker) ResumePolling() {
	if w.poller != nil {
		w.poller.ResumePolling()
	}
}

func (w *ActivityWorker) pollAndHandle(ctx context.Context) error {
	scope := w.options.scope()
	logger := log.With(w.options.logger(), tag.Domain(w.domain), tag.TaskListName(w.taskList))

	scope.IncCounter(metrics.ActivityPollCounter)
	sw := scope.StartTimer(metrics.ActivityPollLatency)
	task, err := w.service.PollForActivityTask(ctx, w.domain, w.taskList, w.options.Identity)
	sw.Stop()
	if err != nil {
		if rpc.IsTransient(err) {
			scope.IncCounter(metrics.ActivityPollTransientFailedCounter)
		} else {
			scope.IncCounter(metrics.ActivityPollFailedCounter)
		}
		return err
	}
	if task == nil || len(task.TaskToken) == 0 {
		scope.IncCounter(metrics.ActivityPollNoTaskCounter)
		return nil
	}
	scope.IncCounter(metrics.ActivityPollSucceedCounter)
	if !task.StartedTimestamp.IsZero() && !task.ScheduledTimestamp.IsZero() {
		scope.RecordTimer(metrics.TaskListQueueLatency, task.StartedTimestamp.Sub(task.ScheduledTimestamp))
	}
	logger = log.With(logger, tag.WorkflowID(task.WorkflowExecution.WorkflowID), tag.RunID(task.WorkflowExecution.RunID))

	if err := w.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer w.sem.Release(1)

	return w.handleAndReport(ctx, task, scope, logger)
}

func (w *ActivityWorker) handleAndReport(ctx context.Context, task *shared.ActivityTask, scope metrics.Scope, logger log.Logger) (err error) {
	if !task.ScheduledTimestamp.IsZero() {
		defer func() {
			scope.RecordTimer(metrics.ActivityE2ELatency, time.Since(task.ScheduledTimestamp))
		}()
	}

	var result *ActivityTaskResult

	func() {
		defer func() {
			if r := recover(); r != nil {
				cancelled, ok := r.(ActivityCancelledPanic)
				if !ok {
					panic(r)
				}
				result = &ActivityTaskResult{
					TaskCancelled: &rpc.RespondActivityTaskCanceledRequest{Details: cancelled.Details},
				}
			}
		}()
		sw := scope.StartTimer(metrics.ActivityExecLatency)
		result, err = w.handler.Handle(task, scope)
		sw.Stop()
	}()
	if err != nil {
		logger.Error("activity task handler failed", tag.Error(err))
		if reportErr := w.reportFailure(ctx, task.TaskToken, err); reportErr != nil {
			return reportErr
		}
		return err
	}

	sw := scope.StartTimer(metrics.ActivityRespLatency)
	err = w.sendReply(ctx, task.TaskToken, result, scope)
	sw.Stop()
	return err
}

func (w *ActivityWorker) sendReply(ctx context.Context, taskToken []byte, result *ActivityTaskResult, scope metrics.Scope) error {
	switch {
	case result.TaskCompleted != nil:
		result.TaskCompleted.TaskToken = taskToken
		result.TaskCompleted.Identity = w.options.Identity
		if err := w.service.RespondActivityTaskCompleted(ctx, result.TaskCompleted); err != nil {
			return err
		}
		scope.IncCounter(metrics.ActivityTaskCompleted)
		return nil
	case result.TaskFailed != nil:
		result.TaskFailed.TaskToken = taskToken
		result.TaskFailed.Identity = w.options.Identity
		if err := w.service.RespondActivityTaskFailed(ctx, result.TaskFailed); err != nil {
			return err
		}
		scope.IncCounter(metrics.ActivityTaskFailed)
		return nil
	case result.TaskCancelled != nil:
		result.TaskCancelled.TaskToken = taskToken
		result.TaskCancelled.Identity = w.options.Identity
		if err := w.service.RespondActivityTaskCanceled(ctx, result.TaskCancelled); err != nil {
			return err
		}
		scope.IncCounter(metrics.ActivityTaskCanceled)
		return nil
	default:
		return fmt.Errorf("activity task handler returned an empty result")
	}
}

func (w *ActivityWorker) reportFailure(ctx context.Context, taskToken []byte, cause error) error {
	return w.service.RespondActivityTaskFailed(ctx, &rpc.RespondActivityTaskFailedRequest{
		TaskToken: taskToken,
		Reason:    fmt.Sprintf("%T", cause),
		Details:   []byte(cause.Error()),
		Identity:  w.options.Identity,
	})
}
