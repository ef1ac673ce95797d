package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		native string
		want   State
	}{
		{native: "RECEIVED", want: StateReceived},
		{native: "PRE_RUN", want: StatePreRun},
		{native: "STARTED", want: StateRunning},
		{native: "RUNNING", want: StateRunning},
		{native: "RETRY", want: StateRunning},
		{native: "FAILURE", want: StateFailure},
		{native: "ERRORED", want: StateFailure},
		{native: "REVOKED", want: StateFailure},
		{native: "SUCCESS", want: StateSuccess},
		// Lifecycle states are matched case-insensitively
		{native: "success", want: StateSuccess},
		{native: "failure", want: StateFailure},
		// Anything unrecognized reports as not yet processed
		{native: "", want: StatePending},
		{native: "PENDING", want: StatePending},
		{native: "SOME_FUTURE_STATE", want: StatePending},
	}

	for _, tt := range tests {
		t.Run("native "+tt.native, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Translate(tt.native))
		})
	}
}
