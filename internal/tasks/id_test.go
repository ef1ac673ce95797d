package tasks

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskIDFormat(t *testing.T) {
	t.Parallel()

	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	for range 100 {
		id := NewTaskID()
		require.Regexp(t, hex32, id)
	}
}

func TestNewTaskIDUniqueness(t *testing.T) {
	t.Parallel()

	const n = 10000
	seen := make(map[string]struct{}, n)
	for range n {
		seen[NewTaskID()] = struct{}{}
	}
	assert.Len(t, seen, n)
}
