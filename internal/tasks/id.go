// Package tasks provides task identifiers, the caller-visible task status
// vocabulary, and the client for the asynchronous repository worker engine.
package tasks

import (
	"strings"

	"github.com/google/uuid"
)

// NewTaskID returns a new globally-unique task identifier: a random 128-bit
// value rendered as 32 lowercase hex characters with no separators.
// Collision probability is cryptographically negligible, so no coordination
// with the settings register is needed.
func NewTaskID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
