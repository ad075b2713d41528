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
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// ClassifyError maps a gRPC status error to the shared.*Error types the rest
// of the worker core understands, so callers above this package never need
// to think in terms of grpc/codes. Errors that are not gRPC statuses (e.g.
// a shared.*Error already raised by a fake ServiceClient in tests) pass
// through unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return &shared.BadRequestError{Message: st.Message()}
	case codes.NotFound:
		return &shared.EntityNotExistsError{Message: st.Message()}
	case codes.AlreadyExists:
		return &shared.WorkflowExecutionAlreadyStartedError{Message: st.Message()}
	case codes.Unavailable:
		return &shared.InternalServiceError{Message: st.Message()}
	case codes.ResourceExhausted:
		return &shared.ServiceBusyError{Message: st.Message()}
	default:
		return &shared.InternalServiceError{Message: st.Message()}
	}
}

// IsTransient reports whether err (after ClassifyError) should be retried.
// Delegates to shared.IsServiceTransientError once classified so the
// transient/permanent decision is made in exactly one place.
func IsTransient(err error) bool {
	return shared.IsServiceTransientError(ClassifyError(err))
}
