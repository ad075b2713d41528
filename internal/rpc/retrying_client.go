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
	"context"
	"time"

	"github.com/meiliang86/cadence-client/common/backoff"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// NewReportOperationRetryPolicy returns the retry policy applied to
// RespondXTaskCompleted/Failed/Canceled calls: aggressive short retries
// bounded by a one-minute expiration, so a worker never blocks a poller
// slot indefinitely trying to report the outcome of a single task.
func NewReportOperationRetryPolicy() backoff.RetryPolicy {
	return backoff.NewExponentialRetryPolicy(50 * time.Millisecond).
		WithMaximumInterval(10 * time.Second).
		WithExpirationInterval(time.Minute)
}

// NewPollOperationRetryPolicy returns the retry policy applied to poll
// calls, which should never give up: a poller keeps polling until shut down.
func NewPollOperationRetryPolicy() backoff.RetryPolicy {
	return backoff.NewExponentialRetryPolicy(200 * time.Millisecond).
		WithMaximumInterval(30 * time.Second)
}

// NewRetryPolicyFromOptions adapts the timing fields of a shared.RetryOptions
// into a backoff.RetryPolicy suitable for NewRetryingClient. DoNotRetry and
// MinimumAttempts have no analogue at this layer: RPC-level retries are
// gated purely on IsTransient(err), not on the kind of error observed —
// that distinction belongs to ShouldRethrow's user-level evaluator instead.
func NewRetryPolicyFromOptions(opts shared.RetryOptions) backoff.RetryPolicy {
	policy := backoff.NewExponentialRetryPolicy(opts.InitialInterval)
	if opts.BackoffCoefficient != 0 {
		policy = policy.WithBackoffCoefficient(opts.BackoffCoefficient)
	}
	if opts.MaximumInterval != 0 {
		policy = policy.WithMaximumInterval(opts.MaximumInterval)
	}
	if opts.MaximumAttempts != 0 {
		policy = policy.WithMaximumAttempts(int(opts.MaximumAttempts))
	}
	if opts.ExpirationInterval != 0 {
		policy = policy.WithExpirationInterval(opts.ExpirationInterval)
	}
	return policy
}

// retryingClient decorates a ServiceClient, retrying every call whose
// classified error is transient according to the supplied policy.
type retryingClient struct {
	inner              ServiceClient
	reportRetryPolicy  backoff.RetryPolicy
}

// NewRetryingClient wraps client so that every Respond* call retries
// transient failures per reportRetryPolicy. Poll calls are left to the
// Poller's own BackoffThrottler (§4.2) rather than retried here, matching
// the historical poller's split between poll-loop backoff and per-RPC retry.
func NewRetryingClient(client ServiceClient, reportRetryPolicy backoff.RetryPolicy) ServiceClient {
	return &retryingClient{inner: client, reportRetryPolicy: reportRetryPolicy}
}

func (c *retryingClient) retry(ctx context.Context, op backoff.Operation) error {
	return backoff.Retry(ctx, op, c.reportRetryPolicy, IsTransient)
}

func (c *retryingClient) PollForDecisionTask(ctx context.Context, domain, taskList, identity string) (*shared.DecisionTask, error) {
	task, err := c.inner.PollForDecisionTask(ctx, domain, taskList, identity)
	return task, ClassifyError(err)
}

func (c *retryingClient) PollForActivityTask(ctx context.Context, domain, taskList, identity string) (*shared.ActivityTask, error) {
	task, err := c.inner.PollForActivityTask(ctx, domain, taskList, identity)
	return task, ClassifyError(err)
}

func (c *retryingClient) RespondDecisionTaskCompleted(ctx context.Context, req *RespondDecisionTaskCompletedRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondDecisionTaskCompleted(ctx, req) })
}

func (c *retryingClient) RespondDecisionTaskFailed(ctx context.Context, req *RespondDecisionTaskFailedRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondDecisionTaskFailed(ctx, req) })
}

func (c *retryingClient) RespondQueryTaskCompleted(ctx context.Context, req *RespondQueryTaskCompletedRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondQueryTaskCompleted(ctx, req) })
}

func (c *retryingClient) RespondActivityTaskCompleted(ctx context.Context, req *RespondActivityTaskCompletedRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondActivityTaskCompleted(ctx, req) })
}

func (c *retryingClient) RespondActivityTaskFailed(ctx context.Context, req *RespondActivityTaskFailedRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondActivityTaskFailed(ctx, req) })
}

func (c *retryingClient) RespondActivityTaskCanceled(ctx context.Context, req *RespondActivityTaskCanceledRequest) error {
	return c.retry(ctx, func() error { return c.inner.RespondActivityTaskCanceled(ctx, req) })
}

func (c *retryingClient) GetWorkflowExecutionHistory(ctx context.Context, req *GetWorkflowExecutionHistoryRequest) (*GetWorkflowExecutionHistoryResponse, error) {
	var resp *GetWorkflowExecutionHistoryResponse
	err := c.retry(ctx, func() error {
		var innerErr error
		resp, innerErr = c.inner.GetWorkflowExecutionHistory(ctx, req)
		return innerErr
	})
	return resp, err
}

func (c *retryingClient) StartWorkflowExecution(ctx context.Context, req *StartWorkflowExecutionRequest) (*StartWorkflowExecutionResponse, error) {
	resp, err := c.inner.StartWorkflowExecution(ctx, req)
	return resp, ClassifyError(err)
}

func (c *retryingClient) SignalWorkflowExecution(ctx context.Context, req *SignalWorkflowExecutionRequest) error {
	return ClassifyError(c.inner.SignalWorkflowExecution(ctx, req))
}

func (c *retryingClient) RequestCancelWorkflowExecution(ctx context.Context, req *RequestCancelWorkflowExecutionRequest) error {
	return ClassifyError(c.inner.RequestCancelWorkflowExecution(ctx, req))
}

func (c *retryingClient) TerminateWorkflowExecution(ctx context.Context, req *TerminateWorkflowExecutionRequest) error {
	return ClassifyError(c.inner.TerminateWorkflowExecution(ctx, req))
}

func (c *retryingClient) QueryWorkflow(ctx context.Context, req *QueryWorkflowRequest) (*QueryWorkflowResponse, error) {
	resp, err := c.inner.QueryWorkflow(ctx, req)
	return resp, ClassifyError(err)
}
