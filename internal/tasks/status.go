package tasks

import "strings"

// State is the caller-visible task status vocabulary
type State string

const (
	// StatePending means the task is not yet processed, or the task id is
	// unknown. The engine cannot tell those apart, so both report PENDING.
	StatePending State = "PENDING"

	// StateReceived means the broker accepted the task
	StateReceived State = "RECEIVED"

	// StatePreRun means the worker is about to start the task
	StatePreRun State = "PRE_RUN"

	// StateRunning means the task is executing
	StateRunning State = "RUNNING"

	// StateFailure means the task failed
	StateFailure State = "FAILURE"

	// StateSuccess means the task finished successfully
	StateSuccess State = "SUCCESS"
)

// Translate maps a native engine lifecycle state onto the caller-visible
// vocabulary. The mapping is total: an engine-reported failure always maps to
// FAILURE, a completed run to SUCCESS, and any state this server does not
// recognize maps to PENDING, the same answer an unknown task id gets.
func Translate(native string) State {
	switch strings.ToUpper(native) {
	case "RECEIVED":
		return StateReceived
	case "PRE_RUN":
		return StatePreRun
	case "STARTED", "RUNNING", "RETRY":
		return StateRunning
	case "FAILURE", "ERRORED", "REVOKED":
		return StateFailure
	case "SUCCESS":
		return StateSuccess
	default:
		return StatePending
	}
}
