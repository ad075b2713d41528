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
	"bytes"
	"container/list"
	"fmt"
	"strconv"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// DefaultMaxDecisionsPerCompletion is the fallback the service is assumed to
// enforce absent a negotiated limit. Spec Open Question: made configurable
// via Options rather than hardcoded, since the service may raise this limit
// without a client release.
const DefaultMaxDecisionsPerCompletion = 10000

// ForceImmediateDecisionTimerID names the synthetic zero-duration timer used
// to force another decision task when a single completion would otherwise
// carry more than MaxDecisionsPerCompletion decisions.
const ForceImmediateDecisionTimerID = "FORCE_IMMEDIATE_DECISION"

// Options configures a DecisionsHelper.
type Options struct {
	// MaxDecisionsPerCompletion bounds how many decisions a single
	// RespondDecisionTaskCompleted call may carry before the helper
	// truncates and appends a force-immediate-decision timer. Zero means
	// DefaultMaxDecisionsPerCompletion.
	MaxDecisionsPerCompletion int
}

// DecisionsHelper reconciles decisions produced by workflow code during one
// replay pass against the history events confirming what already happened.
// One instance is owned by a single replay thread for the lifetime of one
// decision task; it is never shared or reused across tasks.
type DecisionsHelper struct {
	maxDecisionsPerCompletion int

	// decisions is an access-ordered map: list.Back() is the
	// most-recently-touched machine. Every read through getDecision moves
	// its element to the back, so GetDecisions emits decisions in order of
	// last access, matching the Java LinkedHashMap(accessOrder=true)
	// contract this type is grounded on.
	decisions *list.List
	index     map[shared.DecisionID]*list.Element

	activitySchedulingEventIDToActivityID     map[int64]string
	signalInitiatedEventIDToSignalID          map[int64]string
	childWorkflowInitiatedEventIDToWorkflowID map[int64]string
	cancelExternalInitiatedEventIDToWorkflowID map[int64]string

	workflowContextData                       []byte
	workflowContextFromLastDecisionCompletion []byte

	idCounter int64
}

type decisionsHelperEntry struct {
	id      shared.DecisionID
	machine *decisionStateMachine
}

// NewDecisionsHelper returns an empty DecisionsHelper for one decision task.
func NewDecisionsHelper(opts Options) *DecisionsHelper {
	max := opts.MaxDecisionsPerCompletion
	if max <= 0 {
		max = DefaultMaxDecisionsPerCompletion
	}
	return &DecisionsHelper{
		maxDecisionsPerCompletion:                 max,
		decisions:                                 list.New(),
		index:                                     make(map[shared.DecisionID]*list.Element),
		activitySchedulingEventIDToActivityID:     make(map[int64]string),
		signalInitiatedEventIDToSignalID:          make(map[int64]string),
		childWorkflowInitiatedEventIDToWorkflowID: make(map[int64]string),
		cancelExternalInitiatedEventIDToWorkflowID: make(map[int64]string),
	}
}

func (h *DecisionsHelper) addDecision(id shared.DecisionID, machine *decisionStateMachine) {
	elem := h.decisions.PushBack(&decisionsHelperEntry{id: id, machine: machine})
	h.index[id] = elem
}

// getDecision looks up the machine for id, moving it to the back of the
// access order. An id with no machine is a nondeterminism error: the
// workflow code referenced something history has no record of.
func (h *DecisionsHelper) getDecision(id shared.DecisionID) (*decisionStateMachine, error) {
	elem, ok := h.index[id]
	if !ok {
		return nil, &NondeterminismError{Message: fmt.Sprintf(
			"unknown decision %s: the possible causes are a nondeterministic "+
				"workflow definition or an incompatible change to it", id)}
	}
	h.decisions.MoveToBack(elem)
	return elem.Value.(*decisionsHelperEntry).machine, nil
}

// NextID returns a fresh worker-generated control token, used e.g. as the
// UTF-8 control payload identifying a signal decision.
func (h *DecisionsHelper) NextID() string {
	h.idCounter++
	return strconv.FormatInt(h.idCounter, 10)
}

// --- Activity ---

func (h *DecisionsHelper) ScheduleActivityTask(attrs shared.ScheduleActivityTaskDecisionAttributes) {
	id := shared.NewDecisionID(shared.DecisionTargetActivity, attrs.ActivityID)
	h.addDecision(id, newDecisionStateMachine(id, shared.Decision{
		DecisionType: shared.DecisionTypeScheduleActivityTask,
		Attributes:   attrs,
	}))
}

// RequestCancelActivityTask asks to cancel a scheduled activity. Returns
// true if the cancellation is already final (e.g. withdrawn before it was
// ever sent).
func (h *DecisionsHelper) RequestCancelActivityTask(activityID string, immediateCancellationCallback func()) (bool, error) {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, activityID))
	if err != nil {
		return false, err
	}
	m.cancel(&shared.Decision{
		DecisionType: shared.DecisionTypeRequestCancelActivityTask,
		Attributes:   shared.RequestCancelActivityTaskDecisionAttributes{ActivityID: activityID},
	}, immediateCancellationCallback)
	return m.isDone(), nil
}

func (h *DecisionsHelper) HandleActivityTaskScheduled(eventID int64, attrs shared.ActivityTaskScheduledEventAttributes) error {
	h.activitySchedulingEventIDToActivityID[eventID] = attrs.ActivityID
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, attrs.ActivityID))
	if err != nil {
		return err
	}
	return m.handleInitiatedEvent()
}

func (h *DecisionsHelper) HandleActivityTaskCancelRequested(attrs shared.ActivityTaskCancelRequestedEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, attrs.ActivityID))
	if err != nil {
		return err
	}
	return m.handleCancellationInitiatedEvent()
}

// HandleActivityTaskClosed handles the completed/failed/timed-out event for
// an activity, resolved to its activityId from the scheduling event id.
func (h *DecisionsHelper) HandleActivityTaskClosed(scheduledEventID int64) error {
	activityID, ok := h.activitySchedulingEventIDToActivityID[scheduledEventID]
	if !ok {
		return &NondeterminismError{Message: fmt.Sprintf(
			"no activity scheduling event recorded for scheduledEventId %d", scheduledEventID)}
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, activityID))
	if err != nil {
		return err
	}
	return m.handleCompletionEvent()
}

// HandleActivityTaskCanceled handles ActivityTaskCanceled, which — unlike
// the other terminal activity events — arrives after a cancellation was
// already requested, so it drives handleCancellationEvent instead.
func (h *DecisionsHelper) HandleActivityTaskCanceled(scheduledEventID int64) error {
	activityID, ok := h.activitySchedulingEventIDToActivityID[scheduledEventID]
	if !ok {
		return &NondeterminismError{Message: fmt.Sprintf(
			"no activity scheduling event recorded for scheduledEventId %d", scheduledEventID)}
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, activityID))
	if err != nil {
		return err
	}
	return m.handleCancellationEvent()
}

func (h *DecisionsHelper) HandleRequestCancelActivityTaskFailed(attrs shared.RequestCancelActivityTaskFailedEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetActivity, attrs.ActivityID))
	if err != nil {
		return err
	}
	return m.handleCancellationFailureEvent()
}

// --- Timer ---

func (h *DecisionsHelper) StartTimer(attrs shared.StartTimerDecisionAttributes) {
	id := shared.NewDecisionID(shared.DecisionTargetTimer, attrs.TimerID)
	h.addDecision(id, newDecisionStateMachine(id, shared.Decision{
		DecisionType: shared.DecisionTypeStartTimer,
		Attributes:   attrs,
	}))
}

func (h *DecisionsHelper) CancelTimer(timerID string, immediateCancellationCallback func()) (bool, error) {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetTimer, timerID))
	if err != nil {
		return false, err
	}
	if m.isDone() {
		// Cancellation callbacks are not deregistered and might be invoked
		// after the timer already fired.
		return true, nil
	}
	m.cancel(&shared.Decision{
		DecisionType: shared.DecisionTypeCancelTimer,
		Attributes:   shared.CancelTimerDecisionAttributes{TimerID: timerID},
	}, immediateCancellationCallback)
	return m.isDone(), nil
}

func (h *DecisionsHelper) HandleTimerStarted(attrs shared.TimerStartedEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetTimer, attrs.TimerID))
	if err != nil {
		return err
	}
	return m.handleInitiatedEvent()
}

func (h *DecisionsHelper) HandleTimerFired(attrs shared.TimerFiredEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetTimer, attrs.TimerID))
	if err != nil {
		return err
	}
	return m.handleCompletionEvent()
}

func (h *DecisionsHelper) HandleTimerCanceled(attrs shared.TimerCanceledEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetTimer, attrs.TimerID))
	if err != nil {
		return err
	}
	return m.handleCancellationEvent()
}

func (h *DecisionsHelper) HandleCancelTimerFailed(attrs shared.CancelTimerFailedEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetTimer, attrs.TimerID))
	if err != nil {
		return err
	}
	return m.handleCancellationFailureEvent()
}

// --- Child workflow (target EXTERNAL_WORKFLOW) ---

func (h *DecisionsHelper) StartChildWorkflowExecution(attrs shared.StartChildWorkflowExecutionDecisionAttributes) {
	id := shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, attrs.WorkflowID)
	h.addDecision(id, newDecisionStateMachine(id, shared.Decision{
		DecisionType: shared.DecisionTypeStartChildWorkflowExecution,
		Attributes:   attrs,
	}))
}

func (h *DecisionsHelper) HandleStartChildWorkflowExecutionInitiated(eventID int64, attrs shared.StartChildWorkflowExecutionInitiatedEventAttributes) error {
	h.childWorkflowInitiatedEventIDToWorkflowID[eventID] = attrs.WorkflowID
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, attrs.WorkflowID))
	if err != nil {
		return err
	}
	return m.handleInitiatedEvent()
}

func (h *DecisionsHelper) HandleStartChildWorkflowExecutionFailed(attrs shared.StartChildWorkflowExecutionFailedEventAttributes) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, attrs.WorkflowID))
	if err != nil {
		return err
	}
	return m.handleInitiationFailedEvent()
}

func (h *DecisionsHelper) childWorkflowID(initiatedEventID int64) (string, error) {
	workflowID, ok := h.childWorkflowInitiatedEventIDToWorkflowID[initiatedEventID]
	if !ok {
		return "", &NondeterminismError{Message: fmt.Sprintf(
			"no StartChildWorkflowExecutionInitiated event recorded for initiatedEventId %d", initiatedEventID)}
	}
	return workflowID, nil
}

func (h *DecisionsHelper) HandleChildWorkflowExecutionStarted(attrs shared.ChildWorkflowExecutionStartedEventAttributes) error {
	workflowID, err := h.childWorkflowID(attrs.InitiatedEventID)
	if err != nil {
		return err
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, workflowID))
	if err != nil {
		return err
	}
	return m.handleStartedEvent()
}

// HandleChildWorkflowExecutionClosed handles the completed/failed/timed-out
// event for a child workflow, resolved to its workflowId from the initiated
// event.
func (h *DecisionsHelper) HandleChildWorkflowExecutionClosed(initiatedEventID int64) error {
	workflowID, err := h.childWorkflowID(initiatedEventID)
	if err != nil {
		return err
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, workflowID))
	if err != nil {
		return err
	}
	return m.handleCompletionEvent()
}

func (h *DecisionsHelper) HandleChildWorkflowExecutionCanceled(initiatedEventID int64) error {
	workflowID, err := h.childWorkflowID(initiatedEventID)
	if err != nil {
		return err
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, workflowID))
	if err != nil {
		return err
	}
	return m.handleCancellationEvent()
}

// --- Cancel external workflow execution (also target EXTERNAL_WORKFLOW) ---

func (h *DecisionsHelper) RequestCancelExternalWorkflowExecution(attrs shared.RequestCancelExternalWorkflowExecutionDecisionAttributes, immediateCancellationCallback func()) (bool, error) {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, attrs.WorkflowID))
	if err != nil {
		return false, err
	}
	m.cancel(&shared.Decision{
		DecisionType: shared.DecisionTypeRequestCancelExternalWorkflowExecution,
		Attributes:   attrs,
	}, immediateCancellationCallback)
	return m.isDone(), nil
}

func (h *DecisionsHelper) HandleRequestCancelExternalWorkflowExecutionInitiated(eventID int64, attrs shared.RequestCancelExternalWorkflowExecutionInitiatedEventAttributes) error {
	h.cancelExternalInitiatedEventIDToWorkflowID[eventID] = attrs.WorkflowID
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, attrs.WorkflowID))
	if err != nil {
		return err
	}
	return m.handleCancellationInitiatedEvent()
}

func (h *DecisionsHelper) HandleRequestCancelExternalWorkflowExecutionFailed(initiatedEventID int64) error {
	workflowID, ok := h.cancelExternalInitiatedEventIDToWorkflowID[initiatedEventID]
	if !ok {
		return &NondeterminismError{Message: fmt.Sprintf(
			"no RequestCancelExternalWorkflowExecutionInitiated event recorded for initiatedEventId %d", initiatedEventID)}
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetExternalWorkflow, workflowID))
	if err != nil {
		return err
	}
	return m.handleCancellationFailureEvent()
}

// --- Signal external workflow execution ---

// SignalExternalWorkflowExecution registers a pending signal decision. Callers
// are expected to have set attrs.Control to []byte(signalID) (typically a
// value from NextID), since signalId has no home on the wire other than the
// control payload the service echoes back on the corresponding initiated
// event.
func (h *DecisionsHelper) SignalExternalWorkflowExecution(signalID string, attrs shared.SignalExternalWorkflowExecutionDecisionAttributes) {
	id := shared.NewDecisionID(shared.DecisionTargetSignal, signalID)
	h.addDecision(id, newDecisionStateMachine(id, shared.Decision{
		DecisionType: shared.DecisionTypeSignalExternalWorkflowExecution,
		Attributes:   attrs,
	}))
}

func (h *DecisionsHelper) CancelSignalExternalWorkflowExecution(signalID string, immediateCancellationCallback func()) error {
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetSignal, signalID))
	if err != nil {
		return err
	}
	m.cancel(nil, immediateCancellationCallback)
	return nil
}

func (h *DecisionsHelper) HandleSignalExternalWorkflowExecutionInitiated(eventID int64, signalID string) error {
	h.signalInitiatedEventIDToSignalID[eventID] = signalID
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetSignal, signalID))
	if err != nil {
		return err
	}
	return m.handleInitiatedEvent()
}

func (h *DecisionsHelper) signalID(initiatedEventID int64) (string, error) {
	signalID, ok := h.signalInitiatedEventIDToSignalID[initiatedEventID]
	if !ok {
		return "", &NondeterminismError{Message: fmt.Sprintf(
			"no SignalExternalWorkflowExecutionInitiated event recorded for initiatedEventId %d", initiatedEventID)}
	}
	return signalID, nil
}

func (h *DecisionsHelper) HandleSignalExternalWorkflowExecutionFailed(initiatedEventID int64) error {
	signalID, err := h.signalID(initiatedEventID)
	if err != nil {
		return err
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetSignal, signalID))
	if err != nil {
		return err
	}
	return m.handleCompletionEvent()
}

func (h *DecisionsHelper) HandleExternalWorkflowExecutionSignaled(initiatedEventID int64) error {
	signalID, err := h.signalID(initiatedEventID)
	if err != nil {
		return err
	}
	m, err := h.getDecision(shared.NewDecisionID(shared.DecisionTargetSignal, signalID))
	if err != nil {
		return err
	}
	return m.handleCompletionEvent()
}

// GetSignalID resolves a SignalExternalWorkflowExecutionInitiated event id to
// the signalId recorded when that event was first observed.
func (h *DecisionsHelper) GetSignalID(initiatedEventID int64) (string, bool) {
	id, ok := h.signalInitiatedEventIDToSignalID[initiatedEventID]
	return id, ok
}

// GetActivityID resolves an activity scheduling event id to the user-visible
// activityId recorded when the ActivityTaskScheduled event was observed.
func (h *DecisionsHelper) GetActivityID(scheduledEventID int64) (string, bool) {
	id, ok := h.activitySchedulingEventIDToActivityID[scheduledEventID]
	return id, ok
}

// --- Self (terminal workflow decisions) ---

func (h *DecisionsHelper) CompleteWorkflowExecution(result []byte) {
	h.addDecision(shared.SelfDecisionID, newDecisionStateMachine(shared.SelfDecisionID, shared.Decision{
		DecisionType: shared.DecisionTypeCompleteWorkflowExecution,
		Attributes:   shared.CompleteWorkflowExecutionDecisionAttributes{Result: result},
	}))
}

func (h *DecisionsHelper) FailWorkflowExecution(reason string, details []byte) {
	h.addDecision(shared.SelfDecisionID, newDecisionStateMachine(shared.SelfDecisionID, shared.Decision{
		DecisionType: shared.DecisionTypeFailWorkflowExecution,
		Attributes:   shared.FailWorkflowExecutionDecisionAttributes{Reason: reason, Details: details},
	}))
}

func (h *DecisionsHelper) CancelWorkflowExecution(details []byte) {
	h.addDecision(shared.SelfDecisionID, newDecisionStateMachine(shared.SelfDecisionID, shared.Decision{
		DecisionType: shared.DecisionTypeCancelWorkflowExecution,
		Attributes:   shared.CancelWorkflowExecutionDecisionAttributes{Details: details},
	}))
}

func (h *DecisionsHelper) ContinueAsNewWorkflowExecution(attrs shared.ContinueAsNewWorkflowExecutionDecisionAttributes) {
	h.addDecision(shared.SelfDecisionID, newDecisionStateMachine(shared.SelfDecisionID, shared.Decision{
		DecisionType: shared.DecisionTypeContinueAsNewWorkflowExecution,
		Attributes:   attrs,
	}))
}

// --- Emission ---

func isCompletionDecision(d *shared.Decision) bool {
	switch d.DecisionType {
	case shared.DecisionTypeCompleteWorkflowExecution,
		shared.DecisionTypeFailWorkflowExecution,
		shared.DecisionTypeCancelWorkflowExecution,
		shared.DecisionTypeContinueAsNewWorkflowExecution:
		return true
	default:
		return false
	}
}

// GetDecisions returns the decisions to include in this task's response, in
// access order, applying the per-response decision cap.
func (h *DecisionsHelper) GetDecisions() []shared.Decision {
	var result []shared.Decision
	for e := h.decisions.Front(); e != nil; e = e.Next() {
		if d := e.Value.(*decisionsHelperEntry).machine.getDecision(); d != nil {
			result = append(result, *d)
		}
	}

	if len(result) > h.maxDecisionsPerCompletion && !isCompletionDecision(&result[h.maxDecisionsPerCompletion-2]) {
		result = result[:h.maxDecisionsPerCompletion-1]
		result = append(result, shared.Decision{
			DecisionType: shared.DecisionTypeStartTimer,
			Attributes: shared.StartTimerDecisionAttributes{
				TimerID:                   ForceImmediateDecisionTimerID,
				StartToFireTimeoutSeconds: 0,
			},
		})
	}

	return result
}

// HandleDecisionTaskStartedEvent transitions every currently-pending
// decision from CREATED to DECISION_SENT, except that when the batch would
// be truncated by the decision cap, the machine that would produce the
// force-immediate-decision timer is left untouched so it is re-emitted
// (with the same pending decision) on the next task.
func (h *DecisionsHelper) HandleDecisionTaskStartedEvent() {
	type pending struct {
		machine  *decisionStateMachine
		decision *shared.Decision
	}
	var pendings []pending
	for e := h.decisions.Front(); e != nil; e = e.Next() {
		m := e.Value.(*decisionsHelperEntry).machine
		if d := m.getDecision(); d != nil {
			pendings = append(pendings, pending{machine: m, decision: d})
		}
	}

	count := 0
	for i := range pendings {
		var next *pending
		if i+1 < len(pendings) {
			next = &pendings[i+1]
		}
		count++
		if count == h.maxDecisionsPerCompletion && next != nil && !isCompletionDecision(next.decision) {
			// The next decision would push this completion over the cap;
			// leave it (and everything after it) pending so GetDecisions'
			// own truncation logic emits the force-immediate-decision timer
			// in its place instead of duplicating that call here.
			return
		}
		pendings[i].machine.handleDecisionTaskStartedEvent()
	}
}

// SetWorkflowContextData records the workflow-code-supplied opaque context
// blob to round-trip via RespondDecisionTaskCompleted.executionContext.
func (h *DecisionsHelper) SetWorkflowContextData(data []byte) {
	h.workflowContextData = data
}

// GetWorkflowContextDataToReturn returns the current context blob only if it
// differs (byte-wise) from what the last observed DecisionTaskCompleted
// event echoed back, to avoid useless writes.
func (h *DecisionsHelper) GetWorkflowContextDataToReturn() []byte {
	if bytes.Equal(h.workflowContextFromLastDecisionCompletion, h.workflowContextData) {
		return nil
	}
	return h.workflowContextData
}

// HandleDecisionCompletion records the executionContext echoed by an
// observed DecisionTaskCompleted event, establishing the baseline the next
// GetWorkflowContextDataToReturn call diffs against.
func (h *DecisionsHelper) HandleDecisionCompletion(attrs shared.DecisionTaskCompletedEventAttributes, executionContext []byte) {
	h.workflowContextFromLastDecisionCompletion = executionContext
}
