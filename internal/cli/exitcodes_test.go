package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", cause, ExitError},
		{"exit status", Exit(ExitValidation, cause), ExitValidation},
		{"wrapped exit status", fmt.Errorf("running: %w", Exit(ExitNotFound, cause)), ExitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitStatus_Unwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Exit(ExitDataErr, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", err.Error())
	assert.True(t, Reported(err))
	assert.False(t, Reported(cause))
}
