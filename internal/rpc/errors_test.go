package rpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meiliang86/cadence-client/internal/shared"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		code codes.Code
		want interface{}
	}{
		{"invalid argument", codes.InvalidArgument, &shared.BadRequestError{}},
		{"not found", codes.NotFound, &shared.EntityNotExistsError{}},
		{"already exists", codes.AlreadyExists, &shared.WorkflowExecutionAlreadyStartedError{}},
		{"unavailable", codes.Unavailable, &shared.InternalServiceError{}},
		{"resource exhausted", codes.ResourceExhausted, &shared.ServiceBusyError{}},
		{"unknown defaults internal", codes.Unknown, &shared.InternalServiceError{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := status.Error(tc.code, "boom")
			classified := ClassifyError(err)
			assert.IsType(t, tc.want, classified)
		})
	}
}

func TestClassifyError_NilAndNonGRPC(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))

	plain := errors.New("not a grpc status")
	assert.Equal(t, plain, ClassifyError(plain))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(status.Error(codes.Unavailable, "x")))
	assert.True(t, IsTransient(status.Error(codes.ResourceExhausted, "x")))
	assert.False(t, IsTransient(status.Error(codes.InvalidArgument, "x")))
	assert.False(t, IsTransient(status.Error(codes.NotFound, "x")))
}
