package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliang86/cadence-client/common/metrics"
	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/shared"
)

func newTestActivityTask() *shared.ActivityTask {
	return &shared.ActivityTask{
		TaskToken:         []byte("token"),
		WorkflowExecution: shared.WorkflowExecution{WorkflowID: "wf-1", RunID: "run-1"},
		ActivityType:      "TestActivity",
		ActivityID:        "activity-1",
	}
}

type stubActivityTaskHandler struct {
	result      *ActivityTaskResult
	err         error
	panicValue  interface{}
	anyType     bool
}

func (h *stubActivityTaskHandler) IsAnyTypeSupported() bool { return h.anyType }

func (h *stubActivityTaskHandler) Handle(*shared.ActivityTask, metrics.Scope) (*ActivityTaskResult, error) {
	if h.panicValue != nil {
		panic(h.panicValue)
	}
	return h.result, h.err
}

func TestActivityWorker_PollAndHandle_ReportsCompletion(t *testing.T) {
	service := &fakeServiceClient{activityTasks: []*shared.ActivityTask{newTestActivityTask()}}
	handler := &stubActivityTaskHandler{
		anyType: true,
		result:  &ActivityTaskResult{TaskCompleted: &rpc.RespondActivityTaskCompletedRequest{Result: []byte("ok")}},
	}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{Identity: "test"}, handler)
	require.NoError(t, w.pollAndHandle(context.Background()))
	require.Len(t, service.completedActivities, 1)
	assert.Equal(t, []byte("token"), service.completedActivities[0].TaskToken)
	assert.Equal(t, "test", service.completedActivities[0].Identity)
}

func TestActivityWorker_PollAndHandle_NoTaskIsNotAnError(t *testing.T) {
	service := &fakeServiceClient{}
	handler := &stubActivityTaskHandler{anyType: true}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	require.NoError(t, w.pollAndHandle(context.Background()))
	assert.Empty(t, service.completedActivities)
}

func TestActivityWorker_PollAndHandle_HandlerErrorReportsFailure(t *testing.T) {
	service := &fakeServiceClient{activityTasks: []*shared.ActivityTask{newTestActivityTask()}}
	handler := &stubActivityTaskHandler{anyType: true, err: errors.New("activity blew up")}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	err := w.pollAndHandle(context.Background())
	require.Error(t, err)
	require.Len(t, service.failedActivities, 1)
	assert.Contains(t, string(service.failedActivities[0].Details), "activity blew up")
}

func TestActivityWorker_PollAndHandle_CancellationPanicReportsCanceled(t *testing.T) {
	service := &fakeServiceClient{activityTasks: []*shared.ActivityTask{newTestActivityTask()}}
	handler := &stubActivityTaskHandler{anyType: true, panicValue: ActivityCancelledPanic{Details: []byte("cancel-details")}}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	require.NoError(t, w.pollAndHandle(context.Background()))
	require.Len(t, service.canceledActivities, 1)
	assert.Equal(t, []byte("cancel-details"), service.canceledActivities[0].Details)
}

func TestActivityWorker_PollAndHandle_OtherPanicsPropagate(t *testing.T) {
	service := &fakeServiceClient{activityTasks: []*shared.ActivityTask{newTestActivityTask()}}
	handler := &stubActivityTaskHandler{anyType: true, panicValue: "not a cancellation"}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	assert.Panics(t, func() { _ = w.pollAndHandle(context.Background()) })
}

func TestActivityWorker_Start_SkipsPollerWhenNoTypesSupported(t *testing.T) {
	service := &fakeServiceClient{}
	handler := &stubActivityTaskHandler{anyType: false}
	w := NewActivityWorker(service, "domain", "task-list", SingleWorkerOptions{}, handler)
	w.Start()
	assert.False(t, w.IsRunning())
	assert.True(t, w.ShutdownAndAwaitTermination(time.Second))
}
