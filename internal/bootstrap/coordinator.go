package bootstrap

import (
	"context"
	"fmt"

	"github.com/enyinna1234/repository-service-tuf-api/internal/settings"
)

// Coordinator owns the three operations that read or mutate the bootstrap
// register. It holds no state of its own: every call goes back to the shared
// settings store, because other processes mutate the same field.
type Coordinator struct {
	store settings.Store
}

// NewCoordinator creates a coordinator on the given settings store
func NewCoordinator(store settings.Store) *Coordinator {
	return &Coordinator{store: store}
}

// AcquirePreLock writes the pre-lock form "pre-<taskID>" into the register.
//
// The read-snapshot/write-snapshot pair is not atomic against another
// process doing the same: two callers that both observed an absent register
// will both write, and the last writer wins. Callers must check ComputeState
// first; the remaining window is a known limitation of the register contract.
func (c *Coordinator) AcquirePreLock(ctx context.Context, taskID string) error {
	snapshot, err := c.store.ReadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire bootstrap pre-lock: %w", err)
	}

	snapshot[settings.KeyBootstrap] = EncodeInProgress(PhasePre, taskID)

	if err := c.store.WriteSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to acquire bootstrap pre-lock: %w", err)
	}
	return nil
}

// ReleaseLock resets the register to absent.
//
// This is the recovery path for a bootstrap attempt that failed before
// reaching the finished form. It must not be called once the register holds
// the one-component finished value; finished is terminal.
func (c *Coordinator) ReleaseLock(ctx context.Context) error {
	snapshot, err := c.store.ReadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to release bootstrap lock: %w", err)
	}

	delete(snapshot, settings.KeyBootstrap)

	if err := c.store.WriteSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to release bootstrap lock: %w", err)
	}
	return nil
}

// ComputeState forces a fresh read of the register and decodes it
func (c *Coordinator) ComputeState(ctx context.Context) (State, error) {
	value, present, err := c.store.GetFresh(ctx, settings.KeyBootstrap)
	if err != nil {
		return State{}, fmt.Errorf("failed to read bootstrap state: %w", err)
	}
	return DecodeState(value, present), nil
}
