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

package metrics

// Fixed metric names. Counters/timers named here are recorded at the call
// sites documented against each in the component design.
const (
	WorkerStartCounter  = "worker.start"
	PollerStartCounter  = "poller.start"

	DecisionPollCounter               = "poll.counter.decision"
	DecisionPollLatency               = "poll.latency.decision"
	DecisionPollNoTaskCounter         = "poll.no-task.decision"
	DecisionPollSucceedCounter        = "poll.succeed.decision"
	DecisionPollFailedCounter         = "poll.failed.decision"
	DecisionPollTransientFailedCounter = "poll.transient-failed.decision"

	ActivityPollCounter               = "poll.counter.activity"
	ActivityPollLatency               = "poll.latency.activity"
	ActivityPollNoTaskCounter         = "poll.no-task.activity"
	ActivityPollSucceedCounter        = "poll.succeed.activity"
	ActivityPollFailedCounter         = "poll.failed.activity"
	ActivityPollTransientFailedCounter = "poll.transient-failed.activity"

	DecisionExecutionLatency = "decision.execution-latency"
	DecisionResponseLatency  = "decision.response-latency"
	DecisionTaskCompleted    = "decision.task-completed"

	ActivityExecLatency    = "activity.exec-latency"
	ActivityRespLatency    = "activity.resp-latency"
	ActivityE2ELatency     = "activity.e2e-latency"
	ActivityTaskCompleted  = "activity.task.completed"
	ActivityTaskFailed     = "activity.task.failed"
	ActivityTaskCanceled   = "activity.task.canceled"

	TaskListQueueLatency = "tasklist.queue-latency"

	WorkflowGetHistoryCounter = "workflow.get-history.counter"
	WorkflowGetHistoryLatency = "workflow.get-history.latency"
	WorkflowGetHistorySucceed = "workflow.get-history.succeed"
	WorkflowGetHistoryFailed  = "workflow.get-history.failed"
)
