package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TaskName is the registered name of the repository worker task that all
// metadata mutations are dispatched to
const TaskName = "repository_service_tuf_worker"

// resultKeyPrefix namespaces task results in the result backend
const resultKeyPrefix = "rstuf:task-meta:"

// Result is the record the worker engine writes to the result backend
// when a task progresses or completes
type Result struct {
	TaskID   string          `json:"task_id"`
	State    string          `json:"state"`
	Result   json.RawMessage `json:"result,omitempty"`
	DateDone *time.Time      `json:"date_done,omitempty"`
}

// Engine is the boundary to the asynchronous repository worker. Submit hands
// work off for asynchronous processing; Result looks up the engine's native
// lifecycle record by task id. Neither call touches the settings register.
type Engine interface {
	// Submit enqueues (action, payload) under the given task id and returns
	// once the broker acknowledged the enqueue
	Submit(ctx context.Context, taskID, action string, payload json.RawMessage) error

	// Result returns the engine's record for the task, or nil if the engine
	// has never heard of the id
	Result(ctx context.Context, taskID string) (*Result, error)
}

// brokerClient is the subset of the Redis API the engine needs for dispatch
type brokerClient interface {
	LPush(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// resultClient is the subset of the Redis API the engine needs for lookups
type resultClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// message is the envelope pushed onto the broker queue for the worker
type message struct {
	ID       string          `json:"id"`
	Task     string          `json:"task"`
	Action   string          `json:"action"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	QueuedAt time.Time       `json:"queued_at"`
}

// RedisEngine implements Engine on a Redis list broker and a Redis result
// backend, matching the deployment the repository worker consumes from
type RedisEngine struct {
	broker  brokerClient
	results resultClient
	queue   string
}

// NewRedisEngine creates an engine client. broker and results may point at
// different logical databases of the same Redis server.
func NewRedisEngine(broker brokerClient, results resultClient, queue string) *RedisEngine {
	return &RedisEngine{
		broker:  broker,
		results: results,
		queue:   queue,
	}
}

// Submit enqueues the task envelope on the broker queue
func (e *RedisEngine) Submit(ctx context.Context, taskID, action string, payload json.RawMessage) error {
	msg := message{
		ID:       taskID,
		Task:     TaskName,
		Action:   action,
		Payload:  payload,
		QueuedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode task message: %w", err)
	}

	if err := e.broker.LPush(ctx, e.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task %s: %w", taskID, err)
	}
	return nil
}

// Result looks up the task record in the result backend. A missing key means
// the engine never saw the task; that is not an error.
func (e *RedisEngine) Result(ctx context.Context, taskID string) (*Result, error) {
	data, err := e.results.Get(ctx, resultKeyPrefix+taskID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read result for task %s: %w", taskID, err)
	}

	var result Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode result for task %s: %w", taskID, err)
	}
	return &result, nil
}
