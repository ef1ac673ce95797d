package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enyinna1234/repository-service-tuf-api/internal/bootstrap"
	"github.com/enyinna1234/repository-service-tuf-api/internal/service/mocks"
)

func newMockService(t *testing.T) *mocks.MockService {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mocks.NewMockService(ctrl)
}

func TestNewServerRoutes(t *testing.T) {
	t.Parallel()

	mockSvc := newMockService(t)
	mockSvc.EXPECT().BootstrapState(gomock.Any()).Return(bootstrap.State{}, nil).AnyTimes()

	server := NewServer(mockSvc)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "health at root", path: "/health", wantStatus: http.StatusOK},
		{name: "version at root", path: "/version", wantStatus: http.StatusOK},
		{name: "openapi at root", path: "/openapi.json", wantStatus: http.StatusOK},
		{name: "versioned bootstrap", path: "/api/v1/bootstrap", wantStatus: http.StatusOK},
		{name: "metrics absent by default", path: "/metrics", wantStatus: http.StatusNotFound},
		{name: "unknown path", path: "/api/v2/bootstrap", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOpenAPIEndpoint(t *testing.T) {
	t.Parallel()

	server := NewServer(newMockService(t))

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.NotEmpty(t, spec.OpenAPI)
	assert.NotEmpty(t, spec.Info.Title)

	// Every documented route is present
	assert.Contains(t, spec.Paths, "/api/v1/bootstrap")
	assert.Contains(t, spec.Paths["/api/v1/bootstrap"], "get")
	assert.Contains(t, spec.Paths["/api/v1/bootstrap"], "post")
	assert.Contains(t, spec.Paths, "/api/v1/task")
	assert.Contains(t, spec.Paths, "/health")
	assert.Contains(t, spec.Paths, "/readiness")
	assert.Contains(t, spec.Paths, "/version")
}

func TestNewServerWithMetricsHandler(t *testing.T) {
	t.Parallel()

	server := NewServer(newMockService(t), WithMetricsHandler(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("# metrics"))
		}),
	))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}

func TestNewServerWithMiddlewares(t *testing.T) {
	t.Parallel()

	var sawRequest bool
	marker := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawRequest = true
			next.ServeHTTP(w, r)
		})
	}

	server := NewServer(newMockService(t), WithMiddlewares(marker))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawRequest)
}
