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

// Package shared holds the wire-level data model shared by the poller,
// replay engine, and RPC capability: history events, tasks, decisions, and
// the errors the remote service can return.
package shared

// WorkflowExecution identifies one run of one workflow. Immutable.
type WorkflowExecution struct {
	WorkflowID string
	RunID      string
}

// EventType enumerates every kind of HistoryEvent the replay engine
// understands.
type EventType int32

const (
	EventTypeWorkflowExecutionStarted EventType = iota + 1
	EventTypeWorkflowExecutionCompleted
	EventTypeWorkflowExecutionFailed
	EventTypeWorkflowExecutionTimedOut
	EventTypeWorkflowExecutionCanceled
	EventTypeWorkflowExecutionContinuedAsNew

	EventTypeDecisionTaskScheduled
	EventTypeDecisionTaskStarted
	EventTypeDecisionTaskCompleted
	EventTypeDecisionTaskTimedOut
	EventTypeDecisionTaskFailed

	EventTypeActivityTaskScheduled
	EventTypeActivityTaskStarted
	EventTypeActivityTaskCompleted
	EventTypeActivityTaskFailed
	EventTypeActivityTaskTimedOut
	EventTypeActivityTaskCancelRequested
	EventTypeActivityTaskCanceled
	EventTypeRequestCancelActivityTaskFailed

	EventTypeTimerStarted
	EventTypeTimerFired
	EventTypeTimerCanceled
	EventTypeCancelTimerFailed

	EventTypeStartChildWorkflowExecutionInitiated
	EventTypeStartChildWorkflowExecutionFailed
	EventTypeChildWorkflowExecutionStarted
	EventTypeChildWorkflowExecutionCompleted
	EventTypeChildWorkflowExecutionFailed
	EventTypeChildWorkflowExecutionTimedOut
	EventTypeChildWorkflowExecutionCanceled

	EventTypeSignalExternalWorkflowExecutionInitiated
	EventTypeSignalExternalWorkflowExecutionFailed
	EventTypeExternalWorkflowExecutionSignaled

	EventTypeRequestCancelExternalWorkflowExecutionInitiated
	EventTypeRequestCancelExternalWorkflowExecutionFailed
	EventTypeExternalWorkflowExecutionCancelRequested
)

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

var eventTypeNames = map[EventType]string{
	EventTypeWorkflowExecutionStarted:                        "WorkflowExecutionStarted",
	EventTypeWorkflowExecutionCompleted:                       "WorkflowExecutionCompleted",
	EventTypeWorkflowExecutionFailed:                          "WorkflowExecutionFailed",
	EventTypeWorkflowExecutionTimedOut:                        "WorkflowExecutionTimedOut",
	EventTypeWorkflowExecutionCanceled:                        "WorkflowExecutionCanceled",
	EventTypeWorkflowExecutionContinuedAsNew:                  "WorkflowExecutionContinuedAsNew",
	EventTypeDecisionTaskScheduled:                            "DecisionTaskScheduled",
	EventTypeDecisionTaskStarted:                              "DecisionTaskStarted",
	EventTypeDecisionTaskCompleted:                            "DecisionTaskCompleted",
	EventTypeDecisionTaskTimedOut:                              "DecisionTaskTimedOut",
	EventTypeDecisionTaskFailed:                               "DecisionTaskFailed",
	EventTypeActivityTaskScheduled:                            "ActivityTaskScheduled",
	EventTypeActivityTaskStarted:                              "ActivityTaskStarted",
	EventTypeActivityTaskCompleted:                            "ActivityTaskCompleted",
	EventTypeActivityTaskFailed:                               "ActivityTaskFailed",
	EventTypeActivityTaskTimedOut:                             "ActivityTaskTimedOut",
	EventTypeActivityTaskCancelRequested:                      "ActivityTaskCancelRequested",
	EventTypeActivityTaskCanceled:                             "ActivityTaskCanceled",
	EventTypeRequestCancelActivityTaskFailed:                  "RequestCancelActivityTaskFailed",
	EventTypeTimerStarted:                                     "TimerStarted",
	EventTypeTimerFired:                                       "TimerFired",
	EventTypeTimerCanceled:                                    "TimerCanceled",
	EventTypeCancelTimerFailed:                                "CancelTimerFailed",
	EventTypeStartChildWorkflowExecutionInitiated:             "StartChildWorkflowExecutionInitiated",
	EventTypeStartChildWorkflowExecutionFailed:                "StartChildWorkflowExecutionFailed",
	EventTypeChildWorkflowExecutionStarted:                    "ChildWorkflowExecutionStarted",
	EventTypeChildWorkflowExecutionCompleted:                  "ChildWorkflowExecutionCompleted",
	EventTypeChildWorkflowExecutionFailed:                     "ChildWorkflowExecutionFailed",
	EventTypeChildWorkflowExecutionTimedOut:                   "ChildWorkflowExecutionTimedOut",
	EventTypeChildWorkflowExecutionCanceled:                   "ChildWorkflowExecutionCanceled",
	EventTypeSignalExternalWorkflowExecutionInitiated:         "SignalExternalWorkflowExecutionInitiated",
	EventTypeSignalExternalWorkflowExecutionFailed:            "SignalExternalWorkflowExecutionFailed",
	EventTypeExternalWorkflowExecutionSignaled:                "ExternalWorkflowExecutionSignaled",
	EventTypeRequestCancelExternalWorkflowExecutionInitiated:  "RequestCancelExternalWorkflowExecutionInitiated",
	EventTypeRequestCancelExternalWorkflowExecutionFailed:     "RequestCancelExternalWorkflowExecutionFailed",
	EventTypeExternalWorkflowExecutionCancelRequested:         "ExternalWorkflowExecutionCancelRequested",
}

// HistoryEvent is one append-only entry in a workflow execution's history.
// Attributes holds the type-specific payload named by EventType; callers
// type-assert it to the struct value matching EventType (e.g.
// ActivityTaskScheduledEventAttributes, not a pointer to it).
type HistoryEvent struct {
	EventID    int64
	EventType  EventType
	Attributes interface{}
}

// Per-event attribute payloads. Only the fields the replay engine and
// history iterator actually consult are modeled; unknown/unused fields in
// the wire protocol are out of scope (payload (de)serialization is an
// external collaborator, per the purpose statement).

type ActivityTaskScheduledEventAttributes struct {
	ActivityID                    string
	ActivityType                  string
	Input                         []byte
	ScheduleToCloseTimeoutSeconds int32
	ScheduleToStartTimeoutSeconds int32
	StartToCloseTimeoutSeconds    int32
	HeartbeatTimeoutSeconds       int32
}

type ActivityTaskStartedEventAttributes struct {
	ScheduledEventID int64
	Attempt          int32
}

type ActivityTaskCompletedEventAttributes struct {
	ScheduledEventID int64
	Result           []byte
}

type ActivityTaskFailedEventAttributes struct {
	ScheduledEventID int64
	Reason           string
	Details          []byte
}

type ActivityTaskTimedOutEventAttributes struct {
	ScheduledEventID int64
}

type ActivityTaskCancelRequestedEventAttributes struct {
	ActivityID string
}

type ActivityTaskCanceledEventAttributes struct {
	ScheduledEventID int64
	Details          []byte
}

type RequestCancelActivityTaskFailedEventAttributes struct {
	ActivityID string
	Cause      string
}

type TimerStartedEventAttributes struct {
	TimerID                   string
	StartToFireTimeoutSeconds int64
}

type TimerFiredEventAttributes struct {
	TimerID        string
	StartedEventID int64
}

type TimerCanceledEventAttributes struct {
	TimerID string
}

type CancelTimerFailedEventAttributes struct {
	TimerID string
	Cause   string
}

type StartChildWorkflowExecutionInitiatedEventAttributes struct {
	WorkflowID string
}

type StartChildWorkflowExecutionFailedEventAttributes struct {
	WorkflowID       string
	InitiatedEventID int64
	Cause            string
}

type ChildWorkflowExecutionStartedEventAttributes struct {
	InitiatedEventID int64
	WorkflowExecution WorkflowExecution
}

type ChildWorkflowExecutionCompletedEventAttributes struct {
	InitiatedEventID int64
	Result           []byte
}

type ChildWorkflowExecutionFailedEventAttributes struct {
	InitiatedEventID int64
	Reason           string
	Details          []byte
}

type ChildWorkflowExecutionTimedOutEventAttributes struct {
	InitiatedEventID int64
}

type ChildWorkflowExecutionCanceledEventAttributes struct {
	InitiatedEventID int64
	Details          []byte
}

type SignalExternalWorkflowExecutionInitiatedEventAttributes struct {
	WorkflowID string
	SignalName string
	Control    []byte
}

type SignalExternalWorkflowExecutionFailedEventAttributes struct {
	InitiatedEventID int64
	Control          []byte
	Cause            string
}

type ExternalWorkflowExecutionSignaledEventAttributes struct {
	InitiatedEventID int64
}

type RequestCancelExternalWorkflowExecutionInitiatedEventAttributes struct {
	WorkflowID string
	Control    []byte
}

type RequestCancelExternalWorkflowExecutionFailedEventAttributes struct {
	InitiatedEventID int64
	Control          []byte
	Cause            string
}

type ExternalWorkflowExecutionCancelRequestedEventAttributes struct {
	InitiatedEventID int64
}

type WorkflowExecutionStartedEventAttributes struct {
	WorkflowType string
	Input        []byte
}

type DecisionTaskStartedEventAttributes struct {
	ScheduledEventID int64
}

type DecisionTaskCompletedEventAttributes struct {
	ScheduledEventID int64
	StartedEventID   int64
}
