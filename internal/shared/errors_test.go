package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsServiceTransientError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"bad request", &BadRequestError{Message: "x"}, false},
		{"entity not exists", &EntityNotExistsError{Message: "x"}, false},
		{"already started", &WorkflowExecutionAlreadyStartedError{Message: "x"}, false},
		{"internal service error", &InternalServiceError{Message: "x"}, true},
		{"service busy", &ServiceBusyError{Message: "x"}, true},
		{"unrecognized error", errors.New("boom"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.transient, IsServiceTransientError(tc.err))
		})
	}
}

func TestDecisionID_String(t *testing.T) {
	id := NewDecisionID(DecisionTargetActivity, "activity-1")
	assert.Equal(t, "ACTIVITY(activity-1)", id.String())
	assert.Equal(t, "SELF()", SelfDecisionID.String())
}
