package rpc

import (
	"context"

	"github.com/meiliang86/cadence-client/internal/shared"
)

// fakeServiceClient is a hand-written stand-in for a generated gRPC client
// stub, used by tests in this package. internal/worker's tests use their own
// hand-written fake of this same ServiceClient interface.
type fakeServiceClient struct {
	startResp  *StartWorkflowExecutionResponse
	startErr   error
	queryResp  *QueryWorkflowResponse
	queryErr   error
	signalErr  error
	cancelErr  error
	terminateErr error

	respondDecisionCompletedCalls int
	respondDecisionCompletedErr   error
	failUntilCall                 int
}

func (f *fakeServiceClient) PollForDecisionTask(context.Context, string, string, string) (*shared.DecisionTask, error) {
	return nil, nil
}

func (f *fakeServiceClient) PollForActivityTask(context.Context, string, string, string) (*shared.ActivityTask, error) {
	return nil, nil
}

func (f *fakeServiceClient) RespondDecisionTaskCompleted(context.Context, *RespondDecisionTaskCompletedRequest) error {
	f.respondDecisionCompletedCalls++
	if f.failUntilCall > 0 && f.respondDecisionCompletedCalls < f.failUntilCall {
		return f.respondDecisionCompletedErr
	}
	return nil
}

func (f *fakeServiceClient) RespondDecisionTaskFailed(context.Context, *RespondDecisionTaskFailedRequest) error {
	return nil
}

func (f *fakeServiceClient) RespondQueryTaskCompleted(context.Context, *RespondQueryTaskCompletedRequest) error {
	return nil
}

func (f *fakeServiceClient) RespondActivityTaskCompleted(context.Context, *RespondActivityTaskCompletedRequest) error {
	return nil
}

func (f *fakeServiceClient) RespondActivityTaskFailed(context.Context, *RespondActivityTaskFailedRequest) error {
	return nil
}

func (f *fakeServiceClient) RespondActivityTaskCanceled(context.Context, *RespondActivityTaskCanceledRequest) error {
	return nil
}

func (f *fakeServiceClient) GetWorkflowExecutionHistory(context.Context, *GetWorkflowExecutionHistoryRequest) (*GetWorkflowExecutionHistoryResponse, error) {
	return nil, nil
}

func (f *fakeServiceClient) StartWorkflowExecution(context.Context, *StartWorkflowExecutionRequest) (*StartWorkflowExecutionResponse, error) {
	return f.startResp, f.startErr
}

func (f *fakeServiceClient) SignalWorkflowExecution(context.Context, *SignalWorkflowExecutionRequest) error {
	return f.signalErr
}

func (f *fakeServiceClient) RequestCancelWorkflowExecution(context.Context, *RequestCancelWorkflowExecutionRequest) error {
	return f.cancelErr
}

func (f *fakeServiceClient) TerminateWorkflowExecution(context.Context, *TerminateWorkflowExecutionRequest) error {
	return f.terminateErr
}

func (f *fakeServiceClient) QueryWorkflow(context.Context, *QueryWorkflowRequest) (*QueryWorkflowResponse, error) {
	return f.queryResp, f.queryErr
}
