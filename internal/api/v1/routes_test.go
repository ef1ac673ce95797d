package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enyinna1234/repository-service-tuf-api/internal/bootstrap"
	"github.com/enyinna1234/repository-service-tuf-api/internal/service"
	"github.com/enyinna1234/repository-service-tuf-api/internal/service/mocks"
	"github.com/enyinna1234/repository-service-tuf-api/internal/tasks"
)

func newMockService(t *testing.T) *mocks.MockService {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mocks.NewMockService(ctrl)
}

func TestGetBootstrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		state      bootstrap.State
		stateErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not bootstrapped",
			state:      bootstrap.State{},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"bootstrapped":false},"message":"Bootstrap state."}`,
		},
		{
			name: "bootstrap finished",
			state: bootstrap.State{
				Bootstrapped: true,
				State:        bootstrap.StateFinished,
				TaskID:       "abc123",
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"bootstrapped":true,"state":"finished","task_id":"abc123"},"message":"Bootstrap state."}`,
		},
		{
			name: "pre-lock held",
			state: bootstrap.State{
				Bootstrapped: false,
				State:        bootstrap.PhasePre,
				TaskID:       "abc123",
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"bootstrapped":false,"state":"pre","task_id":"abc123"},"message":"Bootstrap state."}`,
		},
		{
			name:       "store unavailable",
			stateErr:   errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to read bootstrap state"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc := newMockService(t)
			mockSvc.EXPECT().BootstrapState(gomock.Any()).Return(tt.state, tt.stateErr)

			req := httptest.NewRequest(http.MethodGet, "/bootstrap", nil)
			rec := httptest.NewRecorder()
			Router(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestPostBootstrap(t *testing.T) {
	t.Parallel()

	payload := `{"metadata":{"root":{}},"settings":{"expiration":{"root":365}}}`

	tests := []struct {
		name       string
		body       string
		result     service.StartResult
		startErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name: "accepted",
			body: payload,
			result: service.StartResult{
				Outcome: service.StartAccepted,
				TaskID:  "abc123",
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `{"data":{"task_id":"abc123"},"message":"Bootstrap accepted."}`,
		},
		{
			name: "already bootstrapped",
			body: payload,
			result: service.StartResult{
				Outcome: service.StartAlreadyBootstrapped,
				TaskID:  "abc123",
				State:   bootstrap.StateFinished,
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"task_id":"abc123","state":"finished"},"message":"System already has repository metadata."}`,
		},
		{
			name: "already in progress",
			body: payload,
			result: service.StartResult{
				Outcome: service.StartInProgress,
				TaskID:  "abc123",
				State:   bootstrap.PhaseSigning,
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"task_id":"abc123","state":"signing"},"message":"Bootstrap already in progress."}`,
		},
		{
			name:       "dispatch failure",
			body:       payload,
			startErr:   errors.New("broker unavailable"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to start bootstrap"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc := newMockService(t)
			mockSvc.EXPECT().
				StartBootstrap(gomock.Any(), json.RawMessage(tt.body)).
				Return(tt.result, tt.startErr)

			req := httptest.NewRequest(http.MethodPost, "/bootstrap", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			Router(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestPostBootstrapInvalidBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "not json", body: "root metadata"},
		{name: "truncated json", body: `{"metadata":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// The service must not be reached for an invalid body
			mockSvc := newMockService(t)

			req := httptest.NewRequest(http.MethodPost, "/bootstrap", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			Router(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Request body must be a JSON document"}`, rec.Body.String())
		})
	}
}

func TestPostBootstrapOversizedBody(t *testing.T) {
	t.Parallel()

	// The service must not be reached for a body over the size cap
	mockSvc := newMockService(t)

	body := bytes.Repeat([]byte("a"), maxBootstrapPayloadBytes+1)
	req := httptest.NewRequest(http.MethodPost, "/bootstrap", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	Router(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request body exceeds the maximum allowed size"}`, rec.Body.String())
}

func TestGetTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		taskID     string
		status     service.TaskStatus
		statusErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:   "pending task",
			taskID: "abc123",
			status: service.TaskStatus{
				TaskID: "abc123",
				State:  tasks.StatePending,
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"task_id":"abc123","state":"PENDING"},"message":"Task state."}`,
		},
		{
			name:   "finished task with result",
			taskID: "abc123",
			status: service.TaskStatus{
				TaskID: "abc123",
				State:  tasks.StateSuccess,
				Result: json.RawMessage(`{"status":true}`),
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"task_id":"abc123","state":"SUCCESS","result":{"status":true}},"message":"Task state."}`,
		},
		{
			name:       "result backend unavailable",
			taskID:     "abc123",
			statusErr:  errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to read task status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc := newMockService(t)
			mockSvc.EXPECT().TaskStatus(gomock.Any(), tt.taskID).Return(tt.status, tt.statusErr)

			req := httptest.NewRequest(http.MethodGet, "/task?task_id="+tt.taskID, nil)
			rec := httptest.NewRecorder()
			Router(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGetTaskMissingTaskID(t *testing.T) {
	t.Parallel()

	// The lookup must not run without a task_id
	mockSvc := newMockService(t)

	req := httptest.NewRequest(http.MethodGet, "/task", nil)
	rec := httptest.NewRecorder()
	Router(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"Query parameter task_id is required"}`, rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	mockSvc := newMockService(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	HealthRouter(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadinessEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checkErr   error
		wantStatus int
	}{
		{
			name:       "ready",
			checkErr:   nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "dependency down",
			checkErr:   errors.New("settings store unreachable"),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc := newMockService(t)
			mockSvc.EXPECT().CheckReadiness(gomock.Any()).Return(tt.checkErr)

			req := httptest.NewRequest(http.MethodGet, "/readiness", nil)
			rec := httptest.NewRecorder()
			HealthRouter(mockSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()

	mockSvc := newMockService(t)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	HealthRouter(mockSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var info map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "go_version")
}
