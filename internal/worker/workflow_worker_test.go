package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliang86/cadence-client/internal/replay"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

func newTestDecisionTask() *shared.DecisionTask {
	return &shared.DecisionTask{
		TaskToken:         []byte("token"),
		WorkflowExecution: shared.WorkflowExecution{WorkflowID: "wf-1", RunID: "run-1"},
		History: []shared.HistoryEvent{
			{
				EventID:    1,
				EventType:  shared.EventTypeWorkflowExecutionStarted,
				Attributes: shared.WorkflowExecutionStartedEventAttributes{WorkflowType: "TestWorkflow"},
			},
		},
		TaskStartToCloseTimeoutSeconds: 10,
	}
}

type stubDecisionTaskHandler struct {
	result  *DecisionTaskResult
	err     error
	anyType bool
}

func (h *stubDecisionTaskHandler) IsAnyTypeSupported() bool { return h.anyType }

func (h *stubDecisionTaskHandler) HandleDecisionTask(*shared.DecisionTask, *replay.HistoryIterator) (*DecisionTaskResult, error) {
	return h.result, h.err
}

func TestWorkflowWorker_PollAndHandle_ReportsCompletion(t *testing.T) {
	service := &fakeServiceClient{decisionTasks: []*shared.DecisionTask{newTestDecisionTask()}}
	handler := &stubDecisionTaskHandler{
		anyType: true,
		result:  &DecisionTaskResult{TaskCompleted: &rpc.RespondDecisionTaskCompletedRequest{}},
	}

	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{Identity: "test"}, handler)
	err := w.pollAndHandle(context.Background())
	require.NoError(t, err)
	require.Len(t, service.completedDecisions, 1)
	assert.Equal(t, []byte("token"), service.completedDecisions[0].TaskToken)
	assert.Equal(t, "test", service.completedDecisions[0].Identity)
}

func TestWorkflowWorker_PollAndHandle_NoTaskIsNotAnError(t *testing.T) {
	service := &fakeServiceClient{}
	handler := &stubDecisionTaskHandler{anyType: true}
	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	require.NoError(t, w.pollAndHandle(context.Background()))
	assert.Empty(t, service.completedDecisions)
	assert.Empty(t, service.failedDecisions)
}

func TestWorkflowWorker_PollAndHandle_HandlerErrorReportsFailure(t *testing.T) {
	service := &fakeServiceClient{decisionTasks: []*shared.DecisionTask{newTestDecisionTask()}}
	handler := &stubDecisionTaskHandler{anyType: true, err: errors.New("replay failed")}
	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	err := w.pollAndHandle(context.Background())
	require.Error(t, err)
	require.Len(t, service.failedDecisions, 1)
	assert.Contains(t, string(service.failedDecisions[0].Details), "replay failed")
}

func TestWorkflowWorker_Start_SkipsPollerWhenNoTypesSupported(t *testing.T) {
	service := &fakeServiceClient{}
	handler := &stubDecisionTaskHandler{anyType: false}
	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	w.Start()
	assert.False(t, w.IsRunning())
	assert.True(t, w.ShutdownAndAwaitTermination(time.Second))
}

func TestWorkflowWorker_QueryWorkflowExecution(t *testing.T) {
	events := newTestDecisionTask().History
	service := &fakeServiceClient{history: &rpc.GetWorkflowExecutionHistoryResponse{History: events}}
	handler := &stubDecisionTaskHandler{
		anyType: true,
		result: &DecisionTaskResult{
			QueryCompleted: &rpc.RespondQueryTaskCompletedRequest{Result: []byte("42")},
		},
	}
	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)

	result, err := w.QueryWorkflowExecution(context.Background(), shared.WorkflowExecution{WorkflowID: "wf-1", RunID: "run-1"}, "getCount", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("42"), result)
}

func TestWorkflowWorker_QueryWorkflowExecution_ErrorMessage(t *testing.T) {
	events := newTestDecisionTask().History
	service := &fakeServiceClient{history: &rpc.GetWorkflowExecutionHistoryResponse{History: events}}
	handler := &stubDecisionTaskHandler{
		anyType: true,
		result: &DecisionTaskResult{
			QueryCompleted: &rpc.RespondQueryTaskCompletedRequest{ErrorMessage: "unknown query type"},
		},
	}
	w := NewWorkflowWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)

	_, err := w.QueryWorkflowExecution(context.Background(), shared.WorkflowExecution{WorkflowID: "wf-1", RunID: "run-1"}, "bogus", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown query type")
}
