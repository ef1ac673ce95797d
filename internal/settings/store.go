// Package settings provides access to the shared repository settings register.
//
// The register is a single Redis hash per deployment environment. Multiple API
// server processes mutate the same hash, so readers must always go back to
// Redis for the authoritative value; nothing in this package caches fields
// across calls.
package settings

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KeyBootstrap is the settings field carrying the bootstrap lock/state value
const KeyBootstrap = "BOOTSTRAP"

// keyPrefix namespaces the per-environment settings hash in Redis
const keyPrefix = "rstuf:settings:"

// Store defines per-environment access to the repository settings register.
//
// The snapshot read/write pair mirrors the register contract: writers read the
// full snapshot, mutate the field they own, and write the full snapshot back.
// There is no conditional write wrapping the pair; two concurrent writers race
// and the last write wins.
type Store interface {
	// ReadSnapshot returns the full settings snapshot for the environment.
	// A missing hash yields an empty snapshot, not an error.
	ReadSnapshot(ctx context.Context) (map[string]string, error)

	// WriteSnapshot replaces the stored settings with the given snapshot.
	// Fields absent from the snapshot are removed; absence is how a field
	// is set to null.
	WriteSnapshot(ctx context.Context, snapshot map[string]string) error

	// GetFresh reads a single field straight from the register, bypassing
	// any process-local state. The bool reports whether the field exists.
	GetFresh(ctx context.Context, field string) (string, bool, error)
}

// RedisStore implements Store on a Redis hash
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a settings store for the given environment
func NewRedisStore(client *redis.Client, environment string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    keyPrefix + environment,
	}
}

// ReadSnapshot returns the full settings snapshot for the environment
func (s *RedisStore) ReadSnapshot(ctx context.Context) (map[string]string, error) {
	snapshot, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings snapshot: %w", err)
	}
	return snapshot, nil
}

// WriteSnapshot replaces the stored settings with the given snapshot.
// The delete and rewrite run in a single MULTI/EXEC transaction so no reader
// ever observes a partially written snapshot.
func (s *RedisStore) WriteSnapshot(ctx context.Context, snapshot map[string]string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(snapshot) > 0 {
			values := make([]any, 0, len(snapshot)*2)
			for field, value := range snapshot {
				values = append(values, field, value)
			}
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write settings snapshot: %w", err)
	}
	return nil
}

// GetFresh reads a single field straight from Redis
func (s *RedisStore) GetFresh(ctx context.Context, field string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, field).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read settings field %s: %w", field, err)
	}
	return value, true, nil
}
