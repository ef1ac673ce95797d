package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enyinna1234/repository-service-tuf-api/internal/settings"
)

// failingStore fails every operation, for error propagation tests
type failingStore struct {
	err error
}

func (s *failingStore) ReadSnapshot(_ context.Context) (map[string]string, error) {
	return nil, s.err
}

func (s *failingStore) WriteSnapshot(_ context.Context, _ map[string]string) error {
	return s.err
}

func (s *failingStore) GetFresh(_ context.Context, _ string) (string, bool, error) {
	return "", false, s.err
}

func TestComputeState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed map[string]string
		want State
	}{
		{
			name: "absent register",
			seed: nil,
			want: State{},
		},
		{
			name: "finished",
			seed: map[string]string{settings.KeyBootstrap: "abc123"},
			want: State{Bootstrapped: true, State: StateFinished, TaskID: "abc123"},
		},
		{
			name: "pre-lock held",
			seed: map[string]string{settings.KeyBootstrap: "pre-abc123"},
			want: State{Bootstrapped: false, State: PhasePre, TaskID: "abc123"},
		},
		{
			name: "signing in progress",
			seed: map[string]string{settings.KeyBootstrap: "signing-abc123"},
			want: State{Bootstrapped: false, State: PhaseSigning, TaskID: "abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := settings.NewMemoryStore()
			if tt.seed != nil {
				require.NoError(t, store.WriteSnapshot(context.Background(), tt.seed))
			}

			state, err := NewCoordinator(store).ComputeState(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestAcquirePreLock(t *testing.T) {
	t.Parallel()

	store := settings.NewMemoryStore()
	coordinator := NewCoordinator(store)

	require.NoError(t, coordinator.AcquirePreLock(context.Background(), "abc123"))

	value, present, err := store.GetFresh(context.Background(), settings.KeyBootstrap)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "pre-abc123", value)

	state, err := coordinator.ComputeState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, State{Bootstrapped: false, State: PhasePre, TaskID: "abc123"}, state)
}

func TestAcquirePreLockPreservesOtherFields(t *testing.T) {
	t.Parallel()

	store := settings.NewMemoryStore()
	require.NoError(t, store.WriteSnapshot(context.Background(), map[string]string{
		"TRUSTED_ROOT": "v2",
	}))

	require.NoError(t, NewCoordinator(store).AcquirePreLock(context.Background(), "abc123"))

	snapshot, err := store.ReadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"TRUSTED_ROOT":        "v2",
		settings.KeyBootstrap: "pre-abc123",
	}, snapshot)
}

func TestReleaseLock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed map[string]string
	}{
		{
			name: "releases held pre-lock",
			seed: map[string]string{settings.KeyBootstrap: "pre-abc123"},
		},
		{
			name: "releases signing lock",
			seed: map[string]string{settings.KeyBootstrap: "signing-abc123"},
		},
		{
			name: "no-op when register absent",
			seed: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := settings.NewMemoryStore()
			require.NoError(t, store.WriteSnapshot(context.Background(), tt.seed))
			coordinator := NewCoordinator(store)

			require.NoError(t, coordinator.ReleaseLock(context.Background()))

			state, err := coordinator.ComputeState(context.Background())
			require.NoError(t, err)
			assert.Equal(t, State{}, state)
		})
	}
}

// Two concurrent acquirers race on the read/write pair; the register must
// end up holding exactly one of the two ids, never a blend.
func TestAcquirePreLockLastWriterWins(t *testing.T) {
	t.Parallel()

	store := settings.NewMemoryStore()
	coordinator := NewCoordinator(store)

	var wg sync.WaitGroup
	for _, taskID := range []string{"aaa111", "bbb222"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, coordinator.AcquirePreLock(context.Background(), taskID))
		}()
	}
	wg.Wait()

	value, present, err := store.GetFresh(context.Background(), settings.KeyBootstrap)
	require.NoError(t, err)
	require.True(t, present)
	assert.Contains(t, []string{"pre-aaa111", "pre-bbb222"}, value)
}

func TestCoordinatorStoreErrors(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	coordinator := NewCoordinator(&failingStore{err: storeErr})

	err := coordinator.AcquirePreLock(context.Background(), "abc123")
	assert.ErrorIs(t, err, storeErr)

	err = coordinator.ReleaseLock(context.Background())
	assert.ErrorIs(t, err, storeErr)

	_, err = coordinator.ComputeState(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
