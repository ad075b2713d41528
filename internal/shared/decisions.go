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

// DecisionType enumerates the commands a decision task response may carry.
type DecisionType int32

const (
	DecisionTypeScheduleActivityTask DecisionType = iota + 1
	DecisionTypeRequestCancelActivityTask
	DecisionTypeStartTimer
	DecisionTypeCancelTimer
	DecisionTypeStartChildWorkflowExecution
	DecisionTypeRequestCancelExternalWorkflowExecution
	DecisionTypeSignalExternalWorkflowExecution
	DecisionTypeCompleteWorkflowExecution
	DecisionTypeFailWorkflowExecution
	DecisionTypeCancelWorkflowExecution
	DecisionTypeContinueAsNewWorkflowExecution
)

// DecisionTarget is the kind of entity a DecisionId refers to.
type DecisionTarget int32

const (
	DecisionTargetActivity DecisionTarget = iota
	DecisionTargetTimer
	DecisionTargetExternalWorkflow
	DecisionTargetSignal
	DecisionTargetSelf
)

func (d DecisionTarget) String() string {
	switch d {
	case DecisionTargetActivity:
		return "ACTIVITY"
	case DecisionTargetTimer:
		return "TIMER"
	case DecisionTargetExternalWorkflow:
		return "EXTERNAL_WORKFLOW"
	case DecisionTargetSignal:
		return "SIGNAL"
	case DecisionTargetSelf:
		return "SELF"
	default:
		return "UNKNOWN"
	}
}

// DecisionID identifies one DecisionStateMachine. Key is empty for
// DecisionTargetSelf, which is a singleton per decision task.
type DecisionID struct {
	Target DecisionTarget
	Key    string
}

func (id DecisionID) String() string {
	return fmt.Sprintf("%s(%s)", id.Target, id.Key)
}

// NewDecisionID builds a DecisionID for any target but Self.
func NewDecisionID(target DecisionTarget, key string) DecisionID {
	return DecisionID{Target: target, Key: key}
}

// SelfDecisionID is the singleton DecisionID used for the one per-task
// workflow-result decision (complete/fail/cancel/continue-as-new).
var SelfDecisionID = DecisionID{Target: DecisionTargetSelf}

// Decision is a single outgoing command a decision task response may carry.
// Attributes holds the DecisionType-specific payload.
type Decision struct {
	DecisionType DecisionType
	Attributes   interface{}
}

type ScheduleActivityTaskDecisionAttributes struct {
	ActivityID                    string
	ActivityType                  string
	Input                         []byte
	ScheduleToCloseTimeoutSeconds int32
	ScheduleToStartTimeoutSeconds int32
	StartToCloseTimeoutSeconds    int32
	HeartbeatTimeoutSeconds       int32
}

type RequestCancelActivityTaskDecisionAttributes struct {
	ActivityID string
}

type StartTimerDecisionAttributes struct {
	TimerID                   string
	StartToFireTimeoutSeconds int64
}

type CancelTimerDecisionAttributes struct {
	TimerID string
}

type StartChildWorkflowExecutionDecisionAttributes struct {
	WorkflowID   string
	WorkflowType string
	Input        []byte
}

type RequestCancelExternalWorkflowExecutionDecisionAttributes struct {
	WorkflowID string
	Control    []byte
}

type SignalExternalWorkflowExecutionDecisionAttributes struct {
	WorkflowID string
	SignalName string
	Input      []byte
	Control    []byte
}

type CompleteWorkflowExecutionDecisionAttributes struct {
	Result []byte
}

type FailWorkflowExecutionDecisionAttributes struct {
	Reason  string
	Details []byte
}

type CancelWorkflowExecutionDecisionAttributes struct {
	Details []byte
}

type ContinueAsNewWorkflowExecutionDecisionAttributes struct {
	WorkflowType string
	Input        []byte
}
