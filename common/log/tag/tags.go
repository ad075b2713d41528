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

package tag

import "time"

// All logging tags used by the worker core are defined here, grouped by the
// subsystem that emits them.

// Error returns a tag for an error value.
func Error(err error) Tag { return NewErrorTag(err) }

// Identity returns a tag for a worker's configured identity string.
func Identity(identity string) Tag { return NewStringTag("identity", identity) }

// Domain returns a tag for the domain a poller is bound to.
func Domain(domain string) Tag { return NewStringTag("domain", domain) }

// TaskListName returns a tag for the task list a poller is bound to.
func TaskListName(name string) Tag { return NewStringTag("task-list", name) }

// WorkflowID returns a tag for a workflow execution's workflowId.
func WorkflowID(id string) Tag { return NewStringTag("workflow-id", id) }

// RunID returns a tag for a workflow execution's runId.
func RunID(id string) Tag { return NewStringTag("run-id", id) }

// WorkflowType returns a tag for a workflow's registered type name.
func WorkflowType(name string) Tag { return NewStringTag("workflow-type", name) }

// ActivityID returns a tag for a user-visible activity id.
func ActivityID(id string) Tag { return NewStringTag("activity-id", id) }

// ActivityType returns a tag for an activity's registered type name.
func ActivityType(name string) Tag { return NewStringTag("activity-type", name) }

// TimerID returns a tag for a user-visible timer id.
func TimerID(id string) Tag { return NewStringTag("timer-id", id) }

// SignalID returns a tag for the worker-generated signal control token.
func SignalID(id string) Tag { return NewStringTag("signal-id", id) }

// EventID returns a tag for a history event's eventId.
func EventID(id int64) Tag { return NewInt64Tag("event-id", id) }

// Attempt returns a tag for the current retry attempt number.
func Attempt(n int64) Tag { return NewInt64Tag("attempt", n) }

// Backoff returns a tag for a computed backoff delay.
func Backoff(d time.Duration) Tag { return NewDurationTag("backoff", d) }

// TaskToken returns a tag for an opaque task token (logged as its byte length).
func TaskToken(token []byte) Tag { return NewIntTag("task-token-len", len(token)) }

// DecisionCount returns a tag for the number of decisions in a batch.
func DecisionCount(n int) Tag { return NewIntTag("decision-count", n) }

// PollerRoutine returns a tag for a poller goroutine's ordinal within its pool.
func PollerRoutine(n int) Tag { return NewIntTag("poller-routine", n) }
