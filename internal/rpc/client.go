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

// Package rpc is the capability boundary between the worker core and the
// remote workflow service: a plain interface plus gRPC-flavored error
// classification and a retrying decorator. Wire encoding and transport
// configuration live outside this package's scope.
package rpc

import (
	"context"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// ServiceClient is every remote call the poller, replay engine, and external
// workflow client façade need. Implementations typically wrap a generated
// gRPC client stub.
type ServiceClient interface {
	PollForDecisionTask(ctx context.Context, domain, taskList, identity string) (*shared.DecisionTask, error)
	PollForActivityTask(ctx context.Context, domain, taskList, identity string) (*shared.ActivityTask, error)

	RespondDecisionTaskCompleted(ctx context.Context, req *RespondDecisionTaskCompletedRequest) error
	RespondDecisionTaskFailed(ctx context.Context, req *RespondDecisionTaskFailedRequest) error
	RespondQueryTaskCompleted(ctx context.Context, req *RespondQueryTaskCompletedRequest) error

	RespondActivityTaskCompleted(ctx context.Context, req *RespondActivityTaskCompletedRequest) error
	RespondActivityTaskFailed(ctx context.Context, req *RespondActivityTaskFailedRequest) error
	RespondActivityTaskCanceled(ctx context.Context, req *RespondActivityTaskCanceledRequest) error

	GetWorkflowExecutionHistory(ctx context.Context, req *GetWorkflowExecutionHistoryRequest) (*GetWorkflowExecutionHistoryResponse, error)

	StartWorkflowExecution(ctx context.Context, req *StartWorkflowExecutionRequest) (*StartWorkflowExecutionResponse, error)
	SignalWorkflowExecution(ctx context.Context, req *SignalWorkflowExecutionRequest) error
	RequestCancelWorkflowExecution(ctx context.Context, req *RequestCancelWorkflowExecutionRequest) error
	TerminateWorkflowExecution(ctx context.Context, req *TerminateWorkflowExecutionRequest) error
	QueryWorkflow(ctx context.Context, req *QueryWorkflowRequest) (*QueryWorkflowResponse, error)
}

type RespondDecisionTaskCompletedRequest struct {
	TaskToken        []byte
	Decisions        []shared.Decision
	Identity         string
	ExecutionContext []byte
}

type RespondDecisionTaskFailedRequest struct {
	TaskToken []byte
	Cause     string
	Details   []byte
	Identity  string
}

type RespondQueryTaskCompletedRequest struct {
	TaskToken    []byte
	Result       []byte
	ErrorMessage string
}

type RespondActivityTaskCompletedRequest struct {
	TaskToken []byte
	Result    []byte
	Identity  string
}

type RespondActivityTaskFailedRequest struct {
	TaskToken []byte
	Reason    string
	Details   []byte
	Identity  string
}

type RespondActivityTaskCanceledRequest struct {
	TaskToken []byte
	Details   []byte
	Identity  string
}

type GetWorkflowExecutionHistoryRequest struct {
	Domain        string
	Execution     shared.WorkflowExecution
	MaxPageSize   int32
	NextPageToken []byte
}

type GetWorkflowExecutionHistoryResponse struct {
	History       []shared.HistoryEvent
	NextPageToken []byte
}

type StartWorkflowExecutionRequest struct {
	Domain                              string
	WorkflowID                          string
	WorkflowType                        string
	TaskList                            string
	Input                               []byte
	ExecutionStartToCloseTimeoutSeconds int32
	TaskStartToCloseTimeoutSeconds      int32
	Identity                            string
	RetryPolicy                         *shared.RetryOptions
}

type StartWorkflowExecutionResponse struct {
	RunID string
}

type SignalWorkflowExecutionRequest struct {
	Domain     string
	Execution  shared.WorkflowExecution
	SignalName string
	Input      []byte
	Identity   string
}

type RequestCancelWorkflowExecutionRequest struct {
	Domain    string
	Execution shared.WorkflowExecution
	Identity  string
}

type TerminateWorkflowExecutionRequest struct {
	Domain    string
	Execution shared.WorkflowExecution
	Reason    string
	Details   []byte
	Identity  string
}

type QueryWorkflowRequest struct {
	Domain    string
	Execution shared.WorkflowExecution
	Query     shared.WorkflowQuery
}

type QueryWorkflowResponse struct {
	QueryResult []byte
}
