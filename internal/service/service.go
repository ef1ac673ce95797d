// Package service provides the business logic for the RSTUF API server.
package service

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go Service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enyinna1234/repository-service-tuf-api/internal/bootstrap"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
	"github.com/enyinna1234/repository-service-tuf-api/internal/tasks"
)

// ActionBootstrap is the worker action that performs the initial metadata bootstrap
const ActionBootstrap = "add_initial_metadata"

// StartOutcome classifies the result of a bootstrap start request
type StartOutcome string

const (
	// StartAccepted means the pre-lock was taken and the task was dispatched
	StartAccepted StartOutcome = "accepted"

	// StartAlreadyBootstrapped means the register holds the finished form
	StartAlreadyBootstrapped StartOutcome = "already_bootstrapped"

	// StartInProgress means another task already holds an intermediate phase
	StartInProgress StartOutcome = "in_progress"
)

// StartResult is the outcome of StartBootstrap
type StartResult struct {
	// Outcome classifies what happened
	Outcome StartOutcome

	// TaskID is the dispatched task id when accepted, or the id that owns
	// the register otherwise
	TaskID string

	// State is the bootstrap phase observed when the start was refused
	State string
}

// TaskStatus is the caller-visible status of a task
type TaskStatus struct {
	TaskID string          `json:"task_id,omitempty"`
	State  tasks.State     `json:"state"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Service defines the operations the API boundary depends on
type Service interface {
	// BootstrapState returns the current bootstrap register view
	BootstrapState(ctx context.Context) (bootstrap.State, error)

	// StartBootstrap coordinates a bootstrap start: state check, pre-lock,
	// task dispatch. The payload is handed to the worker opaque.
	StartBootstrap(ctx context.Context, payload json.RawMessage) (StartResult, error)

	// TaskStatus reports the status of a task. An empty or unknown id is
	// PENDING, not an error.
	TaskStatus(ctx context.Context, taskID string) (TaskStatus, error)

	// CheckReadiness reports whether the service's dependencies are reachable
	CheckReadiness(ctx context.Context) error
}

// ReadinessCheck probes a service dependency
type ReadinessCheck func(ctx context.Context) error

// DefaultService implements Service on the bootstrap coordinator and the
// worker engine client
type DefaultService struct {
	coordinator *bootstrap.Coordinator
	engine      tasks.Engine
	readiness   []ReadinessCheck
}

// ServiceOption configures a DefaultService
//
//nolint:revive // This name is fine
type ServiceOption func(*DefaultService)

// WithReadinessChecks adds dependency probes run by CheckReadiness
func WithReadinessChecks(checks ...ReadinessCheck) ServiceOption {
	return func(s *DefaultService) {
		s.readiness = append(s.readiness, checks...)
	}
}

// NewService creates the service on the given coordinator and engine
func NewService(coordinator *bootstrap.Coordinator, engine tasks.Engine, opts ...ServiceOption) *DefaultService {
	s := &DefaultService{
		coordinator: coordinator,
		engine:      engine,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BootstrapState returns the current bootstrap register view
func (s *DefaultService) BootstrapState(ctx context.Context) (bootstrap.State, error) {
	return s.coordinator.ComputeState(ctx)
}

// StartBootstrap coordinates a bootstrap start.
//
// The state check and the pre-lock write are two separate register round
// trips; two processes racing through here can both pass the check, and the
// last pre-lock writer wins. See the coordinator for the contract.
func (s *DefaultService) StartBootstrap(ctx context.Context, payload json.RawMessage) (StartResult, error) {
	state, err := s.coordinator.ComputeState(ctx)
	if err != nil {
		return StartResult{}, err
	}

	if state.Bootstrapped {
		return StartResult{
			Outcome: StartAlreadyBootstrapped,
			TaskID:  state.TaskID,
			State:   state.State,
		}, nil
	}
	if state.State != "" {
		return StartResult{
			Outcome: StartInProgress,
			TaskID:  state.TaskID,
			State:   state.State,
		}, nil
	}

	taskID := tasks.NewTaskID()

	if err := s.coordinator.AcquirePreLock(ctx, taskID); err != nil {
		return StartResult{}, err
	}

	if err := s.engine.Submit(ctx, taskID, ActionBootstrap, payload); err != nil {
		// The lock is ours and the worker will never see the task; release
		// so a later attempt is not blocked forever.
		if releaseErr := s.coordinator.ReleaseLock(ctx); releaseErr != nil {
			logger.Errorf("Failed to release bootstrap lock after dispatch failure: %v", releaseErr)
		}
		return StartResult{}, fmt.Errorf("failed to dispatch bootstrap task: %w", err)
	}

	logger.Infof("Bootstrap accepted, dispatched task %s", taskID)
	return StartResult{
		Outcome: StartAccepted,
		TaskID:  taskID,
	}, nil
}

// TaskStatus reports the status of a task
func (s *DefaultService) TaskStatus(ctx context.Context, taskID string) (TaskStatus, error) {
	if taskID == "" {
		return TaskStatus{State: tasks.StatePending}, nil
	}

	result, err := s.engine.Result(ctx, taskID)
	if err != nil {
		return TaskStatus{}, err
	}
	if result == nil {
		// Unknown to the engine: indistinguishable from not yet started
		return TaskStatus{TaskID: taskID, State: tasks.StatePending}, nil
	}

	return TaskStatus{
		TaskID: taskID,
		State:  tasks.Translate(result.State),
		Result: result.Result,
	}, nil
}

// CheckReadiness probes the service's dependencies
func (s *DefaultService) CheckReadiness(ctx context.Context) error {
	for _, check := range s.readiness {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}
