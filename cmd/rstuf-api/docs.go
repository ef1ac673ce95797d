// Package docs provides OpenAPI documentation for the RSTUF API
//
//	@title			Repository Service for TUF API
//	@version		1.0
//	@description	API for bootstrapping the repository metadata store and tracking
//	@description	asynchronous repository tasks handled by the repository worker.
//	@description
//	@description	Authentication is optional and configured per deployment. When enabled,
//	@description	use Bearer token authentication with an HMAC-signed token carrying the
//	@description	scopes the routes demand.
//
//	@contact.url	https://github.com/enyinna1234/repository-service-tuf-api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
//
//	@tag.name	bootstrap
//	@tag.description	Bootstrap state and dispatch
//
//	@tag.name	tasks
//	@tag.description	Asynchronous repository task status
//
//	@tag.name	system
//	@tag.description	System health and version information
package main
