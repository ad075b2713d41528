package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meiliang86/cadence-client/internal/worker"
)

func TestNewOptions_Defaults(t *testing.T) {
	o := newOptions()
	assert.Equal(t, int64(defaultMaxConcurrentActivityExecutionSize), o.MaxConcurrentActivityExecutionSize)
	assert.Equal(t, int64(defaultMaxConcurrentWorkflowExecutionSize), o.MaxConcurrentWorkflowExecutionSize)
	assert.False(t, o.DisableWorkflowWorker)
	assert.False(t, o.DisableActivityWorker)
}

func TestNewOptions_AppliesOverrides(t *testing.T) {
	o := newOptions(
		WithIdentity("my-identity"),
		WithMaxConcurrentActivityExecutionSize(5),
		WithDisableActivityWorker(),
		WithWorkflowPollerOptions(worker.PollerOptions{PollThreadCount: 7}),
	)
	assert.Equal(t, "my-identity", o.Identity)
	assert.Equal(t, int64(5), o.MaxConcurrentActivityExecutionSize)
	assert.True(t, o.DisableActivityWorker)
	assert.Equal(t, 7, o.WorkflowPollerOptions.PollThreadCount)
}

func TestOptions_ToSingleWorkerOptions_CarriesIdentity(t *testing.T) {
	o := newOptions(WithIdentity("worker-1"))
	wfOpts := o.toWorkflowWorkerOptions()
	actOpts := o.toActivityWorkerOptions()
	assert.Equal(t, "worker-1", wfOpts.Identity)
	assert.Equal(t, "worker-1", actOpts.Identity)
}
