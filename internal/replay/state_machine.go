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
	"fmt"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// decisionStateMachine tracks one outgoing decision against the history
// events that confirm it actually happened. Every target kind (activity,
// timer, child workflow, signal, cancel-external, self) shares this same
// transition table; what differs between them is only which Decision they
// carry and which handle* call on DecisionsHelper drives them.
type decisionStateMachine struct {
	id    shared.DecisionID
	state decisionState

	// decision is the pending Decision to emit on the next getDecisions
	// call, or nil once it has been sent or withdrawn by a before-sent
	// cancellation.
	decision *shared.Decision

	// cancelCallback, if set, runs synchronously the moment cancel() is
	// called on a machine still in decisionStateCreated — mirroring the
	// Java source's "immediate cancellation callback" so user code can
	// treat cancel-before-schedule as a no-op delivery.
	cancelCallback func()
}

func newDecisionStateMachine(id shared.DecisionID, decision shared.Decision) *decisionStateMachine {
	return &decisionStateMachine{id: id, state: decisionStateCreated, decision: &decision}
}

func (m *decisionStateMachine) isDone() bool {
	return m.state.isDone()
}

func (m *decisionStateMachine) getDecision() *shared.Decision {
	return m.decision
}

// handleDecisionTaskStartedEvent transitions a still-pending decision out of
// CREATED the moment this replay pass emits it in a decision task response.
func (m *decisionStateMachine) handleDecisionTaskStartedEvent() {
	switch m.state {
	case decisionStateCreated:
		m.state = decisionStateDecisionSent
	case decisionStateCanceledBeforeInitiated:
		// already withdrawn; nothing to send
	}
}

// handleInitiatedEvent moves DECISION_SENT -> INITIATED when history
// confirms the server accepted the scheduling decision.
func (m *decisionStateMachine) handleInitiatedEvent() error {
	switch m.state {
	case decisionStateDecisionSent:
		m.state = decisionStateInitiated
		m.decision = nil
	case decisionStateCanceledBeforeInitiated:
		m.state = decisionStateCanceledAfterInitiated
		m.decision = nil
	default:
		return m.nondeterminismError("initiated event")
	}
	return nil
}

// handleInitiationFailedEvent handles a StartChildWorkflowExecutionFailed-
// style event: the scheduling itself was rejected, so the machine completes
// without ever reaching STARTED.
func (m *decisionStateMachine) handleInitiationFailedEvent() error {
	switch m.state {
	case decisionStateDecisionSent, decisionStateCanceledAfterInitiated:
		m.state = decisionStateCompleted
		m.decision = nil
	default:
		return m.nondeterminismError("initiation-failed event")
	}
	return nil
}

// handleStartedEvent handles the optional extra STARTED hop (child workflow
// executions only; activities and timers skip straight to completion).
func (m *decisionStateMachine) handleStartedEvent() error {
	switch m.state {
	case decisionStateInitiated:
		m.state = decisionStateStarted
	default:
		return m.nondeterminismError("started event")
	}
	return nil
}

// handleCompletionEvent handles the terminal completed/failed/timedOut/fired
// event for this target.
func (m *decisionStateMachine) handleCompletionEvent() error {
	switch m.state {
	case decisionStateInitiated, decisionStateStarted, decisionStateCanceledAfterInitiated, decisionStateCanceledAfterStarted:
		m.state = decisionStateCompleted
		m.decision = nil
	default:
		return m.nondeterminismError("completion event")
	}
	return nil
}

// handleCancellationInitiatedEvent handles a cancel-requested event arriving
// for an activity or an in-flight RequestCancelExternalWorkflowExecution.
func (m *decisionStateMachine) handleCancellationInitiatedEvent() error {
	switch m.state {
	case decisionStateInitiated:
		m.state = decisionStateCanceledAfterInitiated
	case decisionStateStarted:
		m.state = decisionStateCanceledAfterStarted
	case decisionStateCancellationDecisionSent:
		// The cancel decision has been recorded; stop re-emitting it.
		m.decision = nil
	default:
		return m.nondeterminismError("cancellation-initiated event")
	}
	return nil
}

// handleCancellationEvent handles the terminal canceled event.
func (m *decisionStateMachine) handleCancellationEvent() error {
	switch m.state {
	case decisionStateCanceledAfterInitiated, decisionStateCanceledAfterStarted, decisionStateCancellationDecisionSent:
		m.state = decisionStateCompleted
		m.decision = nil
	default:
		return m.nondeterminismError("cancellation event")
	}
	return nil
}

// handleCancellationFailureEvent handles a RequestCancelActivityTaskFailed /
// CancelTimerFailed / RequestCancelExternalWorkflowExecutionFailed event:
// the cancel attempt itself did not take, so the machine returns to
// whatever non-canceled terminal state its target reaches on its own.
func (m *decisionStateMachine) handleCancellationFailureEvent() error {
	switch m.state {
	case decisionStateCancellationDecisionSent:
		m.state = decisionStateCompletedAfterCancellationDecisionSent
		m.decision = nil
	case decisionStateCanceledAfterInitiated, decisionStateCanceledAfterStarted:
		m.state = decisionStateCompleted
		m.decision = nil
	default:
		return m.nondeterminismError("cancellation-failure event")
	}
	return nil
}

// cancel withdraws a not-yet-sent decision, or emits a cancellation decision
// for one already in flight. immediateCancellationCallback runs synchronously
// when the decision is withdrawn before ever being sent.
func (m *decisionStateMachine) cancel(cancelDecision *shared.Decision, immediateCancellationCallback func()) {
	switch m.state {
	case decisionStateCreated:
		m.state = decisionStateCanceledBeforeInitiated
		m.decision = nil
		if immediateCancellationCallback != nil {
			immediateCancellationCallback()
		}
	case decisionStateInitiated, decisionStateStarted, decisionStateDecisionSent:
		m.state = decisionStateCancellationDecisionSent
		m.decision = cancelDecision
	}
}

func (m *decisionStateMachine) nondeterminismError(event string) error {
	return &NondeterminismError{
		Message: fmt.Sprintf(
			"decision %s received unexpected %s while in state %s: "+
				"the workflow definition code diverged from history",
			m.id, event, m.state,
		),
	}
}

// NondeterminismError is returned when a history event arrives for a
// decision that cannot accept it in its current state (or, via
// DecisionsHelper, for an id with no state machine at all). Surfacing this
// distinctly from other replay errors lets a worker fail the decision task
// instead of silently corrupting replay state.
type NondeterminismError struct {
	Message string
}

func (e *NondeterminismError) Error() string { return e.Message }
