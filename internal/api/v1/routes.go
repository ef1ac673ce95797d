// Package v1 provides the REST API handlers for the RSTUF API.
package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enyinna1234/repository-service-tuf-api/internal/auth"
	"github.com/enyinna1234/repository-service-tuf-api/internal/bootstrap"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
	"github.com/enyinna1234/repository-service-tuf-api/internal/service"
	"github.com/enyinna1234/repository-service-tuf-api/internal/versions"
)

// maxBootstrapPayloadBytes caps the bootstrap request body. Root metadata
// plus settings fits comfortably; anything larger is a client error.
const maxBootstrapPayloadBytes = 4 << 20

// BootstrapStateResponse is the response for bootstrap state queries
type BootstrapStateResponse struct {
	Data    bootstrap.State `json:"data"`
	Message string          `json:"message"`
}

// BootstrapPostData carries the id of the task performing the bootstrap
type BootstrapPostData struct {
	TaskID string `json:"task_id,omitempty"`
	State  string `json:"state,omitempty"`
}

// BootstrapPostResponse is the response for bootstrap start requests
type BootstrapPostResponse struct {
	Data    BootstrapPostData `json:"data"`
	Message string            `json:"message"`
}

// TaskResponse is the response for task status queries
type TaskResponse struct {
	Data    service.TaskStatus `json:"data"`
	Message string             `json:"message"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the RSTUF API with dependency injection
type Routes struct {
	service service.Service
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.Service) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the RSTUF API
func Router(svc service.Service) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.With(auth.RequireScopes(auth.ScopeReadBootstrap)).Get("/bootstrap", routes.getBootstrap)
	r.With(auth.RequireScopes(auth.ScopeWriteBootstrap)).Post("/bootstrap", routes.postBootstrap)
	r.With(auth.RequireScopes(auth.ScopeReadTasks)).Get("/task", routes.getTask)

	return r
}

// getBootstrap handles GET /api/v1/bootstrap
//
//	@Summary		Get bootstrap state
//	@Description	Get the current state of the repository metadata bootstrap
//	@Tags			bootstrap
//	@Produce		json
//	@Success		200	{object}	BootstrapStateResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/v1/bootstrap [get]
func (rr *Routes) getBootstrap(w http.ResponseWriter, r *http.Request) {
	state, err := rr.service.BootstrapState(r.Context())
	if err != nil {
		logger.Errorf("Failed to read bootstrap state: %v", err)
		rr.writeErrorResponse(w, "Failed to read bootstrap state", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, BootstrapStateResponse{
		Data:    state,
		Message: "Bootstrap state.",
	})
}

// postBootstrap handles POST /api/v1/bootstrap
//
// The payload (root metadata plus repository settings) is opaque to this
// server; it is handed to the repository worker as-is.
//
//	@Summary		Start bootstrap
//	@Description	Dispatch the one-time repository metadata bootstrap to the repository worker
//	@Tags			bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object	true	"Root metadata and repository settings"
//	@Success		202		{object}	BootstrapPostResponse
//	@Success		200		{object}	BootstrapPostResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/bootstrap [post]
func (rr *Routes) postBootstrap(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBootstrapPayloadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			rr.writeErrorResponse(w, "Request body exceeds the maximum allowed size", http.StatusRequestEntityTooLarge)
			return
		}
		rr.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) || len(body) == 0 {
		rr.writeErrorResponse(w, "Request body must be a JSON document", http.StatusBadRequest)
		return
	}

	result, err := rr.service.StartBootstrap(r.Context(), body)
	if err != nil {
		logger.Errorf("Failed to start bootstrap: %v", err)
		rr.writeErrorResponse(w, "Failed to start bootstrap", http.StatusInternalServerError)
		return
	}

	switch result.Outcome {
	case service.StartAlreadyBootstrapped:
		rr.writeJSONResponse(w, http.StatusOK, BootstrapPostResponse{
			Data:    BootstrapPostData{TaskID: result.TaskID, State: result.State},
			Message: "System already has repository metadata.",
		})
	case service.StartInProgress:
		rr.writeJSONResponse(w, http.StatusOK, BootstrapPostResponse{
			Data:    BootstrapPostData{TaskID: result.TaskID, State: result.State},
			Message: "Bootstrap already in progress.",
		})
	default:
		rr.writeJSONResponse(w, http.StatusAccepted, BootstrapPostResponse{
			Data:    BootstrapPostData{TaskID: result.TaskID},
			Message: "Bootstrap accepted.",
		})
	}
}

// getTask handles GET /api/v1/task
//
// The task_id query parameter is required at this boundary; the underlying
// status lookup itself answers PENDING for ids the engine does not know.
//
//	@Summary		Get task status
//	@Description	Get the status of an asynchronous repository task
//	@Tags			tasks
//	@Produce		json
//	@Param			task_id	query		string	true	"Task identifier"
//	@Success		200		{object}	TaskResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/task [get]
func (rr *Routes) getTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("task_id")
	if taskID == "" {
		rr.writeErrorResponse(w, "Query parameter task_id is required", http.StatusUnprocessableEntity)
		return
	}

	status, err := rr.service.TaskStatus(r.Context(), taskID)
	if err != nil {
		logger.Errorf("Failed to read status for task %s: %v", taskID, err)
		rr.writeErrorResponse(w, "Failed to read task status", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, TaskResponse{
		Data:    status,
		Message: "Task state.",
	})
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.Service) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
//
//	@Summary		Health check
//	@Description	Check if the API server is healthy
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests
//
//	@Summary		Readiness check
//	@Description	Check if the API server is ready to serve requests
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	ErrorResponse
//	@Router			/readiness [get]
func readinessHandler(svc service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			errorResp := ErrorResponse{
				Error: "Service not ready: " + err.Error(),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(errorResp); encodeErr != nil {
				logger.Errorf("Failed to encode readiness error response: %v", encodeErr)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
//
//	@Summary		Version information
//	@Description	Get version information about the API server
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/version [get]
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		logger.Errorf("Failed to encode version info: %v", err)
	}
}

// writeJSONResponse writes a JSON response with the given data
func (*Routes) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := ErrorResponse{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}
