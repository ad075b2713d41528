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

import "time"

// WorkflowQuery is carried on a DecisionTask when the task represents a
// query rather than (or in addition to) a normal decision.
type WorkflowQuery struct {
	QueryType string
	QueryArgs []byte
}

// DecisionTask is what a workflow-task poll returns.
type DecisionTask struct {
	TaskToken              []byte
	WorkflowType            string
	WorkflowExecution       WorkflowExecution
	StartedEventID          int64
	PreviousStartedEventID  int64
	History                 []HistoryEvent
	NextPageToken           []byte
	Query                   *WorkflowQuery
	TaskListName            string
	// TaskStartToCloseTimeoutSeconds bounds how long this worker has to
	// finish processing the task, including any history pagination
	// performed by the HistoryIterator.
	TaskStartToCloseTimeoutSeconds int32
}

// IsQueryTask reports whether this task should be answered via
// RespondQueryTaskCompleted instead of (or alongside) RespondDecisionTaskCompleted.
func (t *DecisionTask) IsQueryTask() bool {
	return t.Query != nil
}

// ActivityTask is what an activity-task poll returns.
type ActivityTask struct {
	TaskToken                      []byte
	WorkflowType                   string
	WorkflowExecution               WorkflowExecution
	ActivityType                    string
	ActivityID                      string
	Input                           []byte
	ScheduledTimestamp              time.Time
	StartedTimestamp                time.Time
	HeartbeatTimeoutSeconds         int32
	ScheduleToCloseTimeoutSeconds   int32
	StartToCloseTimeoutSeconds      int32
	Attempt                         int32
	TaskListName                    string
}

// RetryOptions controls retries of user-initiated operations (activity
// execution, RPC calls) independent of the per-poller BackoffThrottler.
type RetryOptions struct {
	InitialInterval    time.Duration
	MaximumInterval    time.Duration
	BackoffCoefficient float64
	MaximumAttempts    int32
	MinimumAttempts    int32
	ExpirationInterval time.Duration
	DoNotRetry         []string
}

// DefaultBackoffCoefficient is applied when RetryOptions.BackoffCoefficient
// is left at its zero value.
const DefaultBackoffCoefficient = 2.0
