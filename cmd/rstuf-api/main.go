// Package main is the entry point for the RSTUF API server.
package main

import (
	"os"

	"github.com/spf13/viper"

	"github.com/enyinna1234/repository-service-tuf-api/cmd/rstuf-api/app"
	"github.com/enyinna1234/repository-service-tuf-api/internal/config"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
)

func main() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// Logging is configured once here, before any subsystem runs
	logger.Initialize(viper.GetBool("debug"))
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
