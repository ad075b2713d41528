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

package shared

import "fmt"

// BadRequestError mirrors the remote service rejecting a malformed request.
// Permanent: retrying will not help.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return fmt.Sprintf("bad request: %s", e.Message) }

// EntityNotExistsError is returned when a workflow execution, domain, or
// task list referenced by the caller does not exist. Permanent.
type EntityNotExistsError struct {
	Message string
}

func (e *EntityNotExistsError) Error() string { return fmt.Sprintf("entity not found: %s", e.Message) }

// WorkflowExecutionAlreadyStartedError is returned by StartWorkflowExecution
// when a workflow with the same id and idempotency policy is already
// running. Permanent.
type WorkflowExecutionAlreadyStartedError struct {
	Message string
}

func (e *WorkflowExecutionAlreadyStartedError) Error() string {
	return fmt.Sprintf("workflow execution already started: %s", e.Message)
}

// InternalServiceError is an unexpected failure on the remote service side.
// Transient: safe to retry.
type InternalServiceError struct {
	Message string
}

func (e *InternalServiceError) Error() string { return fmt.Sprintf("internal service error: %s", e.Message) }

// ServiceBusyError is returned when the remote service is shedding load.
// Transient: safe to retry, ideally with backoff.
type ServiceBusyError struct {
	Message string
}

func (e *ServiceBusyError) Error() string { return fmt.Sprintf("service busy: %s", e.Message) }

// ActivityFailure wraps the error surfaced to workflow code when a scheduled
// activity execution fails, carrying the original cause reported by the
// activity itself.
type ActivityFailure struct {
	Cause error
}

func (e *ActivityFailure) Error() string { return fmt.Sprintf("activity failed: %v", e.Cause) }
func (e *ActivityFailure) Unwrap() error { return e.Cause }

// ChildWorkflowFailure wraps the error surfaced to workflow code when a
// child workflow execution fails, carrying the original cause.
type ChildWorkflowFailure struct {
	Cause error
}

func (e *ChildWorkflowFailure) Error() string { return fmt.Sprintf("child workflow failed: %v", e.Cause) }
func (e *ChildWorkflowFailure) Unwrap() error { return e.Cause }

// IsServiceTransientError classifies a remote-service error as worth
// retrying. Unrecognized error types default to transient, since an
// unrecognized failure is more likely a transport hiccup than a permanent
// rejection of the request.
func IsServiceTransientError(err error) bool {
	switch err.(type) {
	case *BadRequestError, *EntityNotExistsError, *WorkflowExecutionAlreadyStartedError:
		return false
	}
	return true
}
