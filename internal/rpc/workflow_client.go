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

	"github.com/google/uuid"

	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// StartWorkflowParameters mirrors the fields a caller supplies to start a
// new workflow execution; WorkflowID is optional and generated if empty.
type StartWorkflowParameters struct {
	WorkflowID                          string
	WorkflowType                        string
	TaskList                            string
	Input                               []byte
	ExecutionStartToCloseTimeoutSeconds int32
	TaskStartToCloseTimeoutSeconds      int32
	RetryPolicy                         *shared.RetryOptions
}

type SignalWorkflowParameters struct {
	WorkflowID string
	RunID      string
	SignalName string
	Input      []byte
}

type TerminateWorkflowParameters struct {
	Execution shared.WorkflowExecution
	Reason    string
	Details   []byte
}

type QueryWorkflowParameters struct {
	WorkflowID string
	RunID      string
	QueryType  string
	Input      []byte
}

// WorkflowClient is the external, domain-scoped façade over ServiceClient
// used by callers that start, signal, cancel, terminate, or query workflow
// executions from outside a workflow (as opposed to the poller/replay
// engine, which drives executions from the inside).
type WorkflowClient struct {
	service      ServiceClient
	domain       string
	identity     string
	metricsScope metrics.Scope
}

// NewWorkflowClient returns a WorkflowClient scoped to domain, tagging every
// RPC it issues with identity and recording metrics on metricsScope.
func NewWorkflowClient(service ServiceClient, domain, identity string, metricsScope metrics.Scope) *WorkflowClient {
	if metricsScope == nil {
		metricsScope = metrics.NoopScope
	}
	return &WorkflowClient{service: service, domain: domain, identity: identity, metricsScope: metricsScope}
}

// StartWorkflow starts a new execution, generating a random WorkflowID when
// params.WorkflowID is empty.
func (c *WorkflowClient) StartWorkflow(ctx context.Context, params StartWorkflowParameters) (shared.WorkflowExecution, error) {
	defer c.metricsScope.Tagged(map[string]string{"workflowType": params.WorkflowType}).
		IncCounter(metrics.WorkerStartCounter)

	workflowID := params.WorkflowID
	if workflowID == "" {
		workflowID = uuid.NewString()
	}

	resp, err := c.service.StartWorkflowExecution(ctx, &StartWorkflowExecutionRequest{
		Domain:                              c.domain,
		WorkflowID:                          workflowID,
		WorkflowType:                        params.WorkflowType,
		TaskList:                            params.TaskList,
		Input:                               params.Input,
		ExecutionStartToCloseTimeoutSeconds: params.ExecutionStartToCloseTimeoutSeconds,
		TaskStartToCloseTimeoutSeconds:      params.TaskStartToCloseTimeoutSeconds,
		Identity:                            c.identity,
		RetryPolicy:                         params.RetryPolicy,
	})
	if err != nil {
		return shared.WorkflowExecution{}, err
	}

	return shared.WorkflowExecution{WorkflowID: workflowID, RunID: resp.RunID}, nil
}

// SignalWorkflow delivers a signal to a running (or, with an empty RunID,
// the current) execution.
func (c *WorkflowClient) SignalWorkflow(ctx context.Context, params SignalWorkflowParameters) error {
	return c.service.SignalWorkflowExecution(ctx, &SignalWorkflowExecutionRequest{
		Domain: c.domain,
		Execution: shared.WorkflowExecution{
			WorkflowID: params.WorkflowID,
			RunID:      params.RunID,
		},
		SignalName: params.SignalName,
		Input:      params.Input,
		Identity:   c.identity,
	})
}

// RequestCancelWorkflow asks the remote service to cancel execution.
func (c *WorkflowClient) RequestCancelWorkflow(ctx context.Context, execution shared.WorkflowExecution) error {
	return c.service.RequestCancelWorkflowExecution(ctx, &RequestCancelWorkflowExecutionRequest{
		Domain:    c.domain,
		Execution: execution,
		Identity:  c.identity,
	})
}

// TerminateWorkflow forcibly ends execution without giving workflow code a
// chance to react, unlike RequestCancelWorkflow.
func (c *WorkflowClient) TerminateWorkflow(ctx context.Context, params TerminateWorkflowParameters) error {
	return c.service.TerminateWorkflowExecution(ctx, &TerminateWorkflowExecutionRequest{
		Domain:    c.domain,
		Execution: params.Execution,
		Reason:    params.Reason,
		Details:   params.Details,
		Identity:  c.identity,
	})
}

// QueryWorkflow synchronously queries a running execution's state and
// returns the raw query result payload.
func (c *WorkflowClient) QueryWorkflow(ctx context.Context, params QueryWorkflowParameters) ([]byte, error) {
	resp, err := c.service.QueryWorkflow(ctx, &QueryWorkflowRequest{
		Domain: c.domain,
		Execution: shared.WorkflowExecution{
			WorkflowID: params.WorkflowID,
			RunID:      params.RunID,
		},
		Query: shared.WorkflowQuery{
			QueryType: params.QueryType,
			QueryArgs: params.Input,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.QueryResult, nil
}
