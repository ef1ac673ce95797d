// Package config provides configuration loading and management for the RSTUF API server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables read by the server
const EnvPrefix = "RSTUF"

const (
	// DefaultEnvironment is the repository settings environment used when none is configured
	DefaultEnvironment = "default"

	// DefaultTaskQueue is the broker queue the repository worker consumes from
	DefaultTaskQueue = "rstuf_internals"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Environment is the repository settings environment this deployment serves.
	// Defaults to "default" if not specified.
	Environment string `yaml:"environment,omitempty"`

	// Redis configures the shared settings register and task result backend
	Redis RedisConfig `yaml:"redis"`

	// Broker configures task dispatch to the repository worker
	Broker BrokerConfig `yaml:"broker,omitempty"`

	// Auth configures the authenticated request boundary (optional)
	Auth *AuthConfig `yaml:"auth,omitempty"`

	// Metrics enables the Prometheus metrics endpoint
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// RedisConfig defines connection settings for the Redis server that backs
// the repository settings register and the task result store
type RedisConfig struct {
	// Host is the Redis server hostname or IP address
	Host string `yaml:"host"`

	// Port is the Redis server port
	Port int `yaml:"port"`

	// PasswordFile is the path to a file containing the Redis password.
	// This is the recommended approach for production deployments.
	// The file should contain only the password with optional trailing whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// SettingsDB is the logical database holding the repository settings register
	SettingsDB int `yaml:"settingsDb,omitempty"`

	// ResultsDB is the logical database holding task results
	ResultsDB int `yaml:"resultsDb,omitempty"`

	// BrokerDB is the logical database used as the task broker queue
	BrokerDB int `yaml:"brokerDb,omitempty"`
}

// BrokerConfig defines task dispatch settings
type BrokerConfig struct {
	// Queue is the name of the queue the repository worker consumes from
	Queue string `yaml:"queue,omitempty"`
}

// AuthConfig defines the token validation settings for the API boundary
type AuthConfig struct {
	// Enabled turns bearer token validation on or off
	Enabled bool `yaml:"enabled"`

	// SecretFile is the path to a file containing the HMAC signing secret
	SecretFile string `yaml:"secretFile,omitempty"`

	// Realm is the protection space reported in WWW-Authenticate challenges
	Realm string `yaml:"realm,omitempty"`

	// PublicPaths are additional paths that bypass authentication
	PublicPaths []string `yaml:"publicPaths,omitempty"`
}

// MetricsConfig defines metrics exposure settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GetPassword returns the Redis password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from RSTUF_REDIS_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
// An empty result is valid: local Redis instances commonly run without auth.
func (r *RedisConfig) GetPassword() (string, error) {
	if r.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(r.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", r.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	return os.Getenv(EnvPrefix + "_REDIS_PASSWORD"), nil
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetSecret returns the token signing secret using the following priority:
// 1. Read from SecretFile if specified
// 2. Read from RSTUF_AUTH_SECRET environment variable
func (a *AuthConfig) GetSecret() ([]byte, error) {
	if a.SecretFile != "" {
		cleanPath := filepath.Clean(a.SecretFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret from file %s: %w", a.SecretFile, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return nil, fmt.Errorf("secret file %s is empty", a.SecretFile)
		}
		return []byte(secret), nil
	}

	if envSecret := os.Getenv(EnvPrefix + "_AUTH_SECRET"); envSecret != "" {
		return []byte(envSecret), nil
	}

	return nil, fmt.Errorf(
		"no token secret configured: set auth.secretFile or the %s_AUTH_SECRET environment variable",
		EnvPrefix,
	)
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetEnvironment returns the settings environment, using "default" if not specified
func (c *Config) GetEnvironment() string {
	if c.Environment == "" {
		return DefaultEnvironment
	}
	return c.Environment
}

// GetTaskQueue returns the broker queue name, using the default if not specified
func (c *Config) GetTaskQueue() string {
	if c.Broker.Queue == "" {
		return DefaultTaskQueue
	}
	return c.Broker.Queue
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("redis.port must be a valid port, got %d", c.Redis.Port)
	}

	for _, db := range []int{c.Redis.SettingsDB, c.Redis.ResultsDB, c.Redis.BrokerDB} {
		if db < 0 {
			return fmt.Errorf("redis logical databases must be non-negative, got %d", db)
		}
	}

	if c.Auth != nil && c.Auth.Enabled {
		if _, err := c.Auth.GetSecret(); err != nil {
			return fmt.Errorf("auth is enabled but unusable: %w", err)
		}
	}

	return nil
}
