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
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
	internalworker "github.com/meiliang86/cadence-client/internal/worker"
)

var errNoWorkflowHandler = errors.New("worker: no workflow handler registered")

// Worker bundles one workflow poller and one activity poller for a single
// (domain, taskList), started and stopped as a unit. Grounded on Worker.java.
//
// Registering what the poller dispatches to is a seam, not a reflection-based
// registry: actual workflow/activity type lookup and invocation lives in the
// decision/activity dispatcher, which is out of scope here. RegisterWorkflow
// and RegisterActivity simply hand this Worker the DecisionTaskHandler/
// ActivityTaskHandler that implements that dispatch.
type Worker struct {
	domain   string
	taskList string
	options  Options

	mu              sync.Mutex
	service         rpc.ServiceClient
	decisionHandler internalworker.DecisionTaskHandler
	activityHandler internalworker.ActivityTaskHandler

	workflowWorker *internalworker.WorkflowWorker
	activityWorker *internalworker.ActivityWorker
}

// New returns a Worker for domain/taskList against service, unconfigured
// until RegisterWorkflow/RegisterActivity are called and Start is invoked.
func New(service rpc.ServiceClient, domain, taskList string, opts ...Option) *Worker {
	return &Worker{
		domain:   domain,
		taskList: taskList,
		options:  newOptions(opts...),
		service:  service,
	}
}

// RegisterWorkflow installs the handler driving this Worker's decision-task
// poller. A Worker with DisableWorkflowWorker set, or with no handler
// registered, never starts a workflow poller.
func (w *Worker) RegisterWorkflow(handler internalworker.DecisionTaskHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.decisionHandler = handler
}

// RegisterActivity installs the handler driving this Worker's activity-task
// poller.
func (w *Worker) RegisterActivity(handler internalworker.ActivityTaskHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activityHandler = handler
}

// Start launches the registered sub-workers' pollers. Calling Start twice,
// or with no handler registered for a sub-worker that isn't disabled, is a
// no-op for that sub-worker rather than an error — mirroring Worker.java's
// tolerance for a worker configured with only one of the two task kinds.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.options.DisableWorkflowWorker && w.decisionHandler != nil && w.workflowWorker == nil {
		completionClient := rpc.NewRetryingClient(w.service, rpc.NewRetryPolicyFromOptions(w.options.ReportWorkflowCompletionRetryOptions))
		w.workflowWorker = internalworker.NewWorkflowWorker(completionClient, w.domain, w.taskList, w.options.toWorkflowWorkerOptions(), w.decisionHandler)
		w.workflowWorker.Start()
	}
	if !w.options.DisableActivityWorker && w.activityHandler != nil && w.activityWorker == nil {
		completionClient := rpc.NewRetryingClient(w.service, rpc.NewRetryPolicyFromOptions(w.options.ReportActivityCompletionRetryOptions))
		w.activityWorker = internalworker.NewActivityWorker(completionClient, w.domain, w.taskList, w.options.toActivityWorkerOptions(), w.activityHandler)
		w.activityWorker.Start()
	}
}

// Stop shuts down both sub-workers and blocks up to timeout for their
// pollers to drain, combining both sub-workers' shutdown outcomes into a
// single error via multierr.
func (w *Worker) Stop(timeout time.Duration) error {
	w.mu.Lock()
	workflowWorker, activityWorker := w.workflowWorker, w.activityWorker
	w.mu.Unlock()

	deadline := time.Now().Add(timeout)
	var err error
	if workflowWorker != nil {
		if !workflowWorker.ShutdownAndAwaitTermination(time.Until(deadline)) {
			err = multierr.Append(err, fmt.Errorf("workflow worker did not terminate within %s", timeout))
		}
	}
	if activityWorker != nil {
		if !activityWorker.ShutdownAndAwaitTermination(time.Until(deadline)) {
			err = multierr.Append(err, fmt.Errorf("activity worker did not terminate within %s", timeout))
		}
	}
	return err
}

// QueryWorkflowExecution runs queryType against execution's full history by
// local replay, without routing through the poller. Requires a workflow
// handler to have been registered, started or not.
func (w *Worker) QueryWorkflowExecution(ctx context.Context, execution shared.WorkflowExecution, queryType string, args []byte) ([]byte, error) {
	w.mu.Lock()
	handler := w.decisionHandler
	service := w.service
	w.mu.Unlock()

	if handler == nil {
		return nil, errNoWorkflowHandler
	}
	queryWorker := internalworker.NewWorkflowWorker(service, w.domain, w.taskList, w.options.toWorkflowWorkerOptions(), handler)
	return queryWorker.QueryWorkflowExecution(ctx, execution, queryType, args)
}
