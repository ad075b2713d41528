package replay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliang86/cadence-client/common/clock"
	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

// fakeHistoryClient is a hand-written stand-in for a generated gRPC client
// stub implementing rpc.ServiceClient, scoped to this package's tests. Only
// GetWorkflowExecutionHistory is exercised by HistoryIterator.
type fakeHistoryClient struct {
	pages   [][]shared.HistoryEvent
	tokens  [][]byte
	calls   int
	err     error
}

func (f *fakeHistoryClient) GetWorkflowExecutionHistory(ctx context.Context, req *rpc.GetWorkflowExecutionHistoryRequest) (*rpc.GetWorkflowExecutionHistoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	f.calls++
	if idx >= len(f.pages) {
		return &rpc.GetWorkflowExecutionHistoryResponse{}, nil
	}
	return &rpc.GetWorkflowExecutionHistoryResponse{History: f.pages[idx], NextPageToken: f.tokens[idx]}, nil
}

func (f *fakeHistoryClient) PollForDecisionTask(context.Context, string, string, string) (*shared.DecisionTask, error) {
	return nil, nil
}
func (f *fakeHistoryClient) PollForActivityTask(context.Context, string, string, string) (*shared.ActivityTask, error) {
	return nil, nil
}
func (f *fakeHistoryClient) RespondDecisionTaskCompleted(context.Context, *rpc.RespondDecisionTaskCompletedRequest) error {
	return nil
}
func (f *fakeHistoryClient) RespondDecisionTaskFailed(context.Context, *rpc.RespondDecisionTaskFailedRequest) error {
	return nil
}
func (f *fakeHistoryClient) RespondQueryTaskCompleted(context.Context, *rpc.RespondQueryTaskCompletedRequest) error {
	return nil
}
func (f *fakeHistoryClient) RespondActivityTaskCompleted(context.Context, *rpc.RespondActivityTaskCompletedRequest) error {
	return nil
}
func (f *fakeHistoryClient) RespondActivityTaskFailed(context.Context, *rpc.RespondActivityTaskFailedRequest) error {
	return nil
}
func (f *fakeHistoryClient) RespondActivityTaskCanceled(context.Context, *rpc.RespondActivityTaskCanceledRequest) error {
	return nil
}
func (f *fakeHistoryClient) StartWorkflowExecution(context.Context, *rpc.StartWorkflowExecutionRequest) (*rpc.StartWorkflowExecutionResponse, error) {
	return nil, nil
}
func (f *fakeHistoryClient) SignalWorkflowExecution(context.Context, *rpc.SignalWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeHistoryClient) RequestCancelWorkflowExecution(context.Context, *rpc.RequestCancelWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeHistoryClient) TerminateWorkflowExecution(context.Context, *rpc.TerminateWorkflowExecutionRequest) error {
	return nil
}
func (f *fakeHistoryClient) QueryWorkflow(context.Context, *rpc.QueryWorkflowRequest) (*rpc.QueryWorkflowResponse, error) {
	return nil, nil
}

func startedEvent(workflowType string) shared.HistoryEvent {
	return shared.HistoryEvent{
		EventID:   1,
		EventType: shared.EventTypeWorkflowExecutionStarted,
		Attributes: shared.WorkflowExecutionStartedEventAttributes{
			WorkflowType: workflowType,
		},
	}
}

func timerStartedEvent(id int64, timerID string) shared.HistoryEvent {
	return shared.HistoryEvent{
		EventID:    id,
		EventType:  shared.EventTypeTimerStarted,
		Attributes: shared.TimerStartedEventAttributes{TimerID: timerID},
	}
}

func TestHistoryIterator_SinglePageNoFetch(t *testing.T) {
	task := &shared.DecisionTask{
		WorkflowExecution:              shared.WorkflowExecution{WorkflowID: "wf1"},
		History:                        []shared.HistoryEvent{startedEvent("Wf"), timerStartedEvent(2, "t1")},
		TaskStartToCloseTimeoutSeconds: 10,
	}
	it, err := NewHistoryIterator(task, nil, "domain", clock.NewRealTimeSource(), metrics.NoopScope)
	require.NoError(t, err)

	assert.Equal(t, "Wf", it.StartedEvent().WorkflowType)
	assert.True(t, it.HasNext())

	e, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, shared.EventTypeWorkflowExecutionStarted, e.EventType)

	e, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, shared.EventTypeTimerStarted, e.EventType)

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryIterator_FirstEventNotStartedIsError(t *testing.T) {
	task := &shared.DecisionTask{
		History:                        []shared.HistoryEvent{timerStartedEvent(1, "t1")},
		TaskStartToCloseTimeoutSeconds: 10,
	}
	_, err := NewHistoryIterator(task, nil, "domain", clock.NewRealTimeSource(), metrics.NoopScope)
	require.Error(t, err)
}

func TestHistoryIterator_FetchesNextPage(t *testing.T) {
	fake := &fakeHistoryClient{
		pages:  [][]shared.HistoryEvent{{timerStartedEvent(3, "t2")}},
		tokens: [][]byte{nil},
	}
	task := &shared.DecisionTask{
		WorkflowExecution:              shared.WorkflowExecution{WorkflowID: "wf1"},
		History:                        []shared.HistoryEvent{startedEvent("Wf")},
		NextPageToken:                  []byte("page-2"),
		TaskStartToCloseTimeoutSeconds: 60,
	}
	source := clock.NewEventTimeSource()
	it, err := NewHistoryIterator(task, fake, "domain", source, metrics.NoopScope)
	require.NoError(t, err)

	_, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	e, ok, err := it.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t2", e.Attributes.(shared.TimerStartedEventAttributes).TimerID)
	assert.Equal(t, 1, fake.calls)

	_, ok, err = it.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryIterator_DeadlineExceeded(t *testing.T) {
	fake := &fakeHistoryClient{}
	task := &shared.DecisionTask{
		WorkflowExecution:              shared.WorkflowExecution{WorkflowID: "wf1"},
		History:                        []shared.HistoryEvent{startedEvent("Wf")},
		NextPageToken:                  []byte("page-2"),
		TaskStartToCloseTimeoutSeconds: 1,
	}
	source := clock.NewEventTimeSource()
	it, err := NewHistoryIterator(task, fake, "domain", source, metrics.NoopScope)
	require.NoError(t, err)

	_, _, err = it.Next(context.Background())
	require.NoError(t, err)

	source.Advance(2 * time.Second)
	_, _, err = it.Next(context.Background())
	assert.ErrorIs(t, err, ErrHistoryPaginationExpired)
}

func TestNewReplayHistoryIterator(t *testing.T) {
	execution := shared.WorkflowExecution{WorkflowID: "wf1", RunID: "run1"}
	events := []shared.HistoryEvent{startedEvent("Wf"), timerStartedEvent(2, "t1")}

	it, task, err := NewReplayHistoryIterator(execution, events, metrics.NoopScope)
	require.NoError(t, err)
	assert.Equal(t, int64(maxInt64), task.StartedEventID)
	assert.Equal(t, int64(maxInt64), task.PreviousStartedEventID)
	assert.Equal(t, "Wf", task.WorkflowType)

	count := 0
	for it.HasNext() {
		_, ok, err := it.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
}
