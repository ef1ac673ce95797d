package app

import (
	"github.com/enyinna1234/repository-service-tuf-api/internal/service"
	"github.com/enyinna1234/repository-service-tuf-api/internal/settings"
	"github.com/enyinna1234/repository-service-tuf-api/internal/tasks"
	"github.com/enyinna1234/repository-service-tuf-api/internal/telemetry"
)

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// Service provides the API business logic
	Service service.Service

	// Store is the shared repository settings register
	Store settings.Store

	// Engine is the client for the asynchronous repository worker
	Engine tasks.Engine

	// Telemetry holds the metrics provider (optional)
	Telemetry *telemetry.Telemetry
}
