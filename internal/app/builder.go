package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/enyinna1234/repository-service-tuf-api/internal/api"
	"github.com/enyinna1234/repository-service-tuf-api/internal/auth"
	"github.com/enyinna1234/repository-service-tuf-api/internal/bootstrap"
	"github.com/enyinna1234/repository-service-tuf-api/internal/config"
	"github.com/enyinna1234/repository-service-tuf-api/internal/logger"
	"github.com/enyinna1234/repository-service-tuf-api/internal/service"
	"github.com/enyinna1234/repository-service-tuf-api/internal/settings"
	"github.com/enyinna1234/repository-service-tuf-api/internal/tasks"
	"github.com/enyinna1234/repository-service-tuf-api/internal/telemetry"
)

const (
	defaultHTTPAddress    = ":8080"
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second

	// redisConnectTimeout bounds the startup connectivity probe. Per-request
	// operations never retry; only startup waits for Redis to come up.
	redisConnectTimeout = 30 * time.Second
)

// defaultPublicPaths are paths that never require authentication
var defaultPublicPaths = []string{"/health", "/readiness", "/version", "/metrics", "/openapi.json"}

// AppOptions is a function that configures the app builder
//
//nolint:revive // This name is fine
type AppOptions func(*appConfig) error

// appConfig builds an App using the builder pattern.
// It supports dependency injection for testing while providing sensible
// defaults for production.
type appConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	store           settings.Store
	engine          tasks.Engine
	readinessChecks []service.ReadinessCheck

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	// Auth components
	authMiddleware func(http.Handler) http.Handler
}

func baseConfig(opts ...AppOptions) (*appConfig, error) {
	cfg := &appConfig{
		address:        defaultHTTPAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// NewApp creates a new app with the given configuration
func NewApp(
	ctx context.Context,
	opts ...AppOptions,
) (*App, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	// Build register and engine clients unless injected
	if err := buildRedisComponents(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to build redis components: %w", err)
	}

	// Build the service on top of the coordinator and engine
	coordinator := bootstrap.NewCoordinator(cfg.store)
	svc := service.NewService(coordinator, cfg.engine,
		service.WithReadinessChecks(cfg.readinessChecks...))

	// Build telemetry if metrics are enabled
	tel, err := buildTelemetry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry: %w", err)
	}

	// Build auth middleware (if not injected)
	if cfg.authMiddleware == nil && cfg.config.Auth != nil && cfg.config.Auth.Enabled {
		tokenMw, authErr := auth.NewTokenMiddleware(cfg.config.Auth)
		if authErr != nil {
			return nil, fmt.Errorf("failed to build auth middleware: %w", authErr)
		}

		publicPaths := slices.Clone(defaultPublicPaths)
		publicPaths = append(publicPaths, cfg.config.Auth.PublicPaths...)
		cfg.authMiddleware = auth.WrapWithPublicPaths(tokenMw, publicPaths)
	}

	httpServer, err := buildHTTPServer(cfg, svc, tel)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	return &App{
		config: cfg.config,
		components: &AppComponents{
			Service:   svc,
			Store:     cfg.store,
			Engine:    cfg.engine,
			Telemetry: tel,
		},
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) AppOptions {
	return func(cfg *appConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) AppOptions {
	return func(cfg *appConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		parts := strings.SplitN(addr, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		host := parts[0]
		port := parts[1]

		if port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) AppOptions {
	return func(cfg *appConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithStore allows injecting a custom settings store (for testing)
func WithStore(s settings.Store) AppOptions {
	return func(cfg *appConfig) error {
		cfg.store = s
		return nil
	}
}

// WithEngine allows injecting a custom worker engine client (for testing)
func WithEngine(e tasks.Engine) AppOptions {
	return func(cfg *appConfig) error {
		cfg.engine = e
		return nil
	}
}

// WithAuthMiddleware allows injecting a custom auth middleware (for testing)
func WithAuthMiddleware(mw func(http.Handler) http.Handler) AppOptions {
	return func(cfg *appConfig) error {
		cfg.authMiddleware = mw
		return nil
	}
}

// buildRedisComponents creates the settings store and engine client on their
// Redis connections, unless both were injected
func buildRedisComponents(ctx context.Context, b *appConfig) error {
	if b.store != nil && b.engine != nil {
		return nil
	}

	cfg := b.config
	password, err := cfg.Redis.GetPassword()
	if err != nil {
		return err
	}

	newClient := func(db int) *redis.Client {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: password,
			DB:       db,
		})
	}

	settingsClient := newClient(cfg.Redis.SettingsDB)

	// Wait for Redis at startup. This is the only retry loop in the server;
	// request-path operations surface store errors to the caller directly.
	probe := func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return struct{}{}, settingsClient.Ping(pingCtx).Err()
	}
	if _, err := backoff.Retry(ctx, probe,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(redisConnectTimeout),
	); err != nil {
		return fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr(), err)
	}
	logger.Infof("Connected to redis at %s", cfg.Redis.Addr())

	if b.store == nil {
		b.store = settings.NewRedisStore(settingsClient, cfg.GetEnvironment())
		b.readinessChecks = append(b.readinessChecks, func(ctx context.Context) error {
			return settingsClient.Ping(ctx).Err()
		})
	}

	if b.engine == nil {
		resultsClient := newClient(cfg.Redis.ResultsDB)
		brokerClient := newClient(cfg.Redis.BrokerDB)
		b.engine = tasks.NewRedisEngine(brokerClient, resultsClient, cfg.GetTaskQueue())
		b.readinessChecks = append(b.readinessChecks, func(ctx context.Context) error {
			return brokerClient.Ping(ctx).Err()
		})
	}

	return nil
}

// buildTelemetry creates the metrics provider when metrics are enabled
func buildTelemetry(b *appConfig) (*telemetry.Telemetry, error) {
	if b.config.Metrics == nil || !b.config.Metrics.Enabled {
		return nil, nil
	}

	tel, err := telemetry.New()
	if err != nil {
		return nil, err
	}
	logger.Info("Metrics enabled")
	return tel, nil
}

// buildHTTPServer builds the HTTP server with router and middleware
func buildHTTPServer(
	b *appConfig,
	svc service.Service,
	tel *telemetry.Telemetry,
) (*http.Server, error) {
	logger.Info("Initializing HTTP server")

	// Use default middlewares if not provided
	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	serverOpts := []api.ServerOption{}

	if tel != nil {
		metricsMiddleware, err := telemetry.MetricsMiddleware(tel.MeterProvider())
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		// Prepend metrics middleware to capture all requests including those rejected by auth
		b.middlewares = append([]func(http.Handler) http.Handler{metricsMiddleware}, b.middlewares...)
		serverOpts = append(serverOpts, api.WithMetricsHandler(tel.Handler()))
	}

	if b.authMiddleware != nil {
		b.middlewares = append(b.middlewares, b.authMiddleware)
	}

	serverOpts = append(serverOpts, api.WithMiddlewares(b.middlewares...))

	router := api.NewServer(svc, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	logger.Infof("HTTP server configured on %s", b.address)
	return server, nil
}
