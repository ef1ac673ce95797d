package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/enyinna1234/repository-service-tuf-api/internal/app"
	"github.com/enyinna1234/repository-service-tuf-api/internal/config"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the RSTUF API server",
	Long: `Start the RSTUF API server.

The server requires a configuration file (--config) that specifies:
- The repository settings environment
- Redis connection settings for the settings register, task results and broker
- Token validation and metrics settings

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

// defaultGracefulTimeout is a Kubernetes-friendly shutdown time
const defaultGracefulTimeout = 30 * time.Second

func init() {
	serveCmd.Flags().String("address", ":8080", "Address to listen on")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	address := viper.GetString("address")

	logger.Infof("Starting RSTUF API server on %s", address)

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Infof("Loaded configuration from %s (environment: %s, queue: %s)",
		configPath, cfg.GetEnvironment(), cfg.GetTaskQueue())

	application, err := app.NewApp(ctx,
		app.WithConfig(cfg),
		app.WithAddress(address),
	)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
	}

	if err := application.Stop(defaultGracefulTimeout); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	return nil
}
