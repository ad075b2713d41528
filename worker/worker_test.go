package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/replay"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
	internalworker "github.com/meiliang86/cadence-client/internal/worker"
)

// fakeServiceClient is a minimal rpc.ServiceClient stand-in for exercising
// Worker's wiring without a real transport.
type fakeServiceClient struct {
	history *rpc.GetWorkflowExecutionHistoryResponse
}

func (f *fakeServiceClient) PollForDecisionTask(context.Context, string, string, string) (*shared.DecisionTask, error) {
	return nil, nil
}
func (f *fakeServiceClient) PollForActivityTask(context.Context, string, string, string) (*shared.ActivityTask, error) {
	return nil, nil
}
func (f *fakeServiceClient) RespondDecisionTaskCompleted(context.Context, *rpc.RespondDecisionTaskCompletedRequest) error {
	return nil
}
func (f *fakeServiceClient) RespondDecisionTaskFailed(context.Context, *rpc.RespondDecisionTaskFailedRequest) error {
	return nil
}
func (f *fakeServiceClient) RespondQueryTaskCompleted(context.Context, *rpc.RespondQueryTaskCompletedRequest) error {
	return nil
}
func (f *fakeServiceClient) RespondActivityTaskCompleted(context.Context, *rpc.RespondActivityTaskCompletedRequest) error {
	return nil
}
func (f *fakeServiceClient) RespondActivityTaskFailed(context.Context, *rpc.RespondActivityTaskFailedRequest) error {
	return nil
}
func (f *fakeServiceClient) RespondActivityTaskCanceled(context.Context, *rpc.RespondActivityTaskCanceledRequest) error {
	return nil
}
func (f *fakeServiceClient) GetWorkflowExecutionHistory(context.Context, *rpc.GetWorkflowExecutionHistoryRequest) (*rpc.GetWorkflowExecutionHistoryResponse, error) {
	return f.history, nil
}
func (f *fakeServiceClient) StartWorkflowExecution(context.Context, *rpc.StartWorkflowExecutionRequest) (*rpc.StartWorkflowExecutionResponse, error) {
	return nil, nil
}
func (f *fakeServiceClient) SignalWorkflowExecution(context.Context, *rpc.SignalWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeServiceClient) RequestCancelWorkflowExecution(context.Context, *rpc.RequestCancelWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeServiceClient) TerminateWorkflowExecution(context.Context, *rpc.TerminateWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeServiceClient) QueryWorkflow(context.Context, *rpc.QueryWorkflowRequest) (*rpc.QueryWorkflowResponse, error) {
	return nil, nil
}

type stubDecisionTaskHandler struct {
	anyType bool
	result  *internalworker.DecisionTaskResult
}

func (h *stubDecisionTaskHandler) IsAnyTypeSupported() bool { return h.anyType }
func (h *stubDecisionTaskHandler) HandleDecisionTask(*shared.DecisionTask, *replay.HistoryIterator) (*internalworker.DecisionTaskResult, error) {
	return h.result, nil
}

type stubActivityTaskHandler struct {
	anyType bool
}

func (h *stubActivityTaskHandler) IsAnyTypeSupported() bool { return h.anyType }
func (h *stubActivityTaskHandler) Handle(*shared.ActivityTask, metrics.Scope) (*internalworker.ActivityTaskResult, error) {
	return nil, nil
}

func TestWorker_StartIsNoopWithoutRegisteredHandlers(t *testing.T) {
	w := New(&fakeServiceClient{}, "domain", "task-list")
	w.Start()
	assert.NoError(t, w.Stop(time.Second))
}

func TestWorker_DisabledSubWorkerNeverStarts(t *testing.T) {
	w := New(&fakeServiceClient{}, "domain", "task-list", WithDisableWorkflowWorker())
	w.RegisterWorkflow(&stubDecisionTaskHandler{anyType: true})
	w.Start()
	assert.Nil(t, w.workflowWorker)
	assert.NoError(t, w.Stop(time.Second))
}

func TestWorker_QueryWorkflowExecution_RequiresRegisteredHandler(t *testing.T) {
	w := New(&fakeServiceClient{}, "domain", "task-list")
	_, err := w.QueryWorkflowExecution(context.Background(), shared.WorkflowExecution{WorkflowID: "wf-1", RunID: "run-1"}, "q", nil)
	require.ErrorIs(t, err, errNoWorkflowHandler)
}

func TestWorker_RegisteredActivityHandlerStartsActivityWorker(t *testing.T) {
	w := New(&fakeServiceClient{}, "domain", "task-list")
	w.RegisterActivity(&stubActivityTaskHandler{anyType: true})
	w.Start()
	assert.NotNil(t, w.activityWorker)
	assert.NoError(t, w.Stop(time.Second))
}
