package worker

import (
	"context"
	"sync"

	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// fakeServiceClient is a hand-written stand-in for a generated gRPC client
// stub, mirroring internal/rpc's own fakeServiceClient test double.
type fakeServiceClient struct {
	mu sync.Mutex

	decisionTasks []*shared.DecisionTask
	decisionErr   error

	activityTasks []*shared.ActivityTask
	activityErr   error

	history       *rpc.GetWorkflowExecutionHistoryResponse
	historyErr    error

	completedDecisions []*rpc.RespondDecisionTaskCompletedRequest
	failedDecisions    []*rpc.RespondDecisionTaskFailedRequest
	completedQueries   []*rpc.RespondQueryTaskCompletedRequest

	completedActivities []*rpc.RespondActivityTaskCompletedRequest
	failedActivities    []*rpc.RespondActivityTaskFailedRequest
	canceledActivities  []*rpc.RespondActivityTaskCanceledRequest

	respondErr error
}

func (f *fakeServiceClient) nextDecisionTask() *shared.DecisionTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.decisionTasks) == 0 {
		return nil
	}
	task := f.decisionTasks[0]
	f.decisionTasks = f.decisionTasks[1:]
	return task
}

func (f *fakeServiceClient) nextActivityTask() *shared.ActivityTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.activityTasks) == 0 {
		return nil
	}
	task := f.activityTasks[0]
	f.activityTasks = f.activityTasks[1:]
	return task
}

func (f *fakeServiceClient) PollForDecisionTask(context.Context, string, string, string) (*shared.DecisionTask, error) {
	if f.decisionErr != nil {
		return nil, f.decisionErr
	}
	return f.nextDecisionTask(), nil
}

func (f *fakeServiceClient) PollForActivityTask(context.Context, string, string, string) (*shared.ActivityTask, error) {
	if f.activityErr != nil {
		return nil, f.activityErr
	}
	return f.nextActivityTask(), nil
}

func (f *fakeServiceClient) RespondDecisionTaskCompleted(_ context.Context, req *rpc.RespondDecisionTaskCompletedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completedDecisions = append(f.completedDecisions, req)
	return f.respondErr
}

func (f *fakeServiceClient) RespondDecisionTaskFailed(_ context.Context, req *rpc.RespondDecisionTaskFailedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failedDecisions = append(f.failedDecisions, req)
	return f.respondErr
}

func (f *fakeServiceClient) RespondQueryTaskCompleted(_ context.Context, req *rpc.RespondQueryTaskCompletedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completedQueries = append(f.completedQueries, req)
	return f.respondErr
}

func (f *fakeServiceClient) RespondActivityTaskCompleted(_ context.Context, req *rpc.RespondActivityTaskCompletedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completedActivities = append(f.completedActivities, req)
	return f.respondErr
}

func (f *fakeServiceClient) RespondActivityTaskFailed(_ context.Context, req *rpc.RespondActivityTaskFailedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failedActivities = append(f.failedActivities, req)
	return f.respondErr
}

func (f *fakeServiceClient) RespondActivityTaskCanceled(_ context.Context, req *rpc.RespondActivityTaskCanceledRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceledActivities = append(f.canceledActivities, req)
	return f.respondErr
}

func (f *fakeServiceClient) GetWorkflowExecutionHistory(context.Context, *rpc.GetWorkflowExecutionHistoryRequest) (*rpc.GetWorkflowExecutionHistoryResponse, error) {
	return f.history, f.historyErr
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
