// Package bootstrap coordinates the one-time bootstrap of the repository
// metadata store across API server processes.
//
// The whole coordination state lives in a single settings register field,
// encoded as one delimited string:
//
//	(absent)            bootstrap never started
//	"<task-id>"         bootstrap finished, owned by task-id
//	"<phase>-<task-id>" bootstrap in progress, e.g. "pre-..." or "signing-..."
//
// The task id is a 32-char hex token and never contains the delimiter, so the
// component count alone identifies the shape.
package bootstrap

import (
	"strings"

	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
)

// delimiter separates the phase name from the owning task id
const delimiter = "-"

const (
	// PhasePre is the phase written when the pre-lock is acquired
	PhasePre = "pre"

	// PhaseSigning is the phase the repository worker advances to while
	// collecting root signatures. Listed for reference; this service never
	// writes it, only decodes it.
	PhaseSigning = "signing"

	// StateFinished is the state reported once the register has collapsed
	// to the one-component finished form
	StateFinished = "finished"
)

// State is the caller-visible view of the bootstrap register
type State struct {
	// Bootstrapped is true only when the register holds the finished form
	Bootstrapped bool `json:"bootstrapped"`

	// State is the phase name while in progress, "finished" once done,
	// and empty when bootstrap never started
	State string `json:"state,omitempty"`

	// TaskID is the id of the task that owns (or performed) the bootstrap
	TaskID string `json:"task_id,omitempty"`
}

// EncodeInProgress encodes an intermediate phase with its owning task id
func EncodeInProgress(phase, taskID string) string {
	return phase + delimiter + taskID
}

// EncodeFinished encodes the terminal finished form
func EncodeFinished(taskID string) string {
	return taskID
}

// DecodeState decodes a register value into the caller-visible view.
// present is false when the register field is absent.
//
// Values with more than two components are never produced by this system.
// They are logged and treated as absent so a corrupt value cannot block
// every future bootstrap attempt.
func DecodeState(value string, present bool) State {
	if !present || value == "" {
		return State{}
	}

	parts := strings.Split(value, delimiter)
	switch len(parts) {
	case 1:
		return State{
			Bootstrapped: true,
			State:        StateFinished,
			TaskID:       value,
		}
	case 2:
		return State{
			Bootstrapped: false,
			State:        parts[0],
			TaskID:       parts[1],
		}
	default:
		logger.Errorf("Malformed bootstrap register value %q: %d components, want 1 or 2", value, len(parts))
		return State{}
	}
}
