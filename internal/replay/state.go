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

// Package replay is the decision-task replay engine: it reconciles decisions
// produced by workflow code during a replay pass against the history events
// already recorded by the service, and lazily paginates that history.
package replay

// decisionState is the state of one decisionStateMachine.
type decisionState int

const (
	decisionStateCreated decisionState = iota
	decisionStateDecisionSent
	decisionStateInitiated
	decisionStateStarted
	decisionStateCompleted
	decisionStateCanceledBeforeInitiated
	decisionStateCanceledAfterInitiated
	decisionStateCanceledAfterStarted
	decisionStateCancellationDecisionSent
	decisionStateCompletedAfterCancellationDecisionSent
)

func (s decisionState) String() string {
	switch s {
	case decisionStateCreated:
		return "CREATED"
	case decisionStateDecisionSent:
		return "DECISION_SENT"
	case decisionStateInitiated:
		return "INITIATED"
	case decisionStateStarted:
		return "STARTED"
	case decisionStateCompleted:
		return "COMPLETED"
	case decisionStateCanceledBeforeInitiated:
		return "CANCELED_BEFORE_INITIATED"
	case decisionStateCanceledAfterInitiated:
		return "CANCELED_AFTER_INITIATED"
	case decisionStateCanceledAfterStarted:
		return "CANCELED_AFTER_STARTED"
	case decisionStateCancellationDecisionSent:
		return "CANCELLATION_DECISION_SENT"
	case decisionStateCompletedAfterCancellationDecisionSent:
		return "COMPLETED_AFTER_CANCELLATION_DECISION_SENT"
	default:
		return "UNKNOWN"
	}
}

func (s decisionState) isDone() bool {
	return s == decisionStateCompleted || s == decisionStateCompletedAfterCancellationDecisionSent ||
		s == decisionStateCanceledBeforeInitiated
}
