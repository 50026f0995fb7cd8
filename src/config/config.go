package config

import (
	"fmt"
	"os"
	"strings"

	"reactive-dashboard/src/helpers"
	"reactive-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns a configuration that passes Validate
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:                   "reactive-dashboard",
		Host:                   "127.0.0.1",
		Port:                   8080,
		LogLevel:               "INFO",
		GrpcHost:               "127.0.0.1",
		GrpcPort:               9090,
		ShutdownTimeoutSeconds: 5,
		CorsOriginPrefix:       "http://127.0.0.1:",
	}}
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file.
// Keys missing from the file keep their Default values.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data over the defaults
	config := Default()
	if err := yaml.Unmarshal(data, config.MConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty", nil)
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARNING", "WARN", "ERROR":
	default:
		return helpers.NewConfigurationError(fmt.Sprintf("unknown log level %q", c.LogLevel), nil)
	}

	if c.Host == "" {
		return helpers.NewConfigurationError("server host cannot be empty", nil)
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return helpers.NewConfigurationError(fmt.Sprintf("invalid server port number: %d (must be between 1025 and 65535)", c.Port), nil)
	}

	if c.GrpcHost == "" {
		return helpers.NewConfigurationError("grpc host cannot be empty", nil)
	}
	if c.GrpcPort <= 1024 || c.GrpcPort > 65535 {
		return helpers.NewConfigurationError(fmt.Sprintf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort), nil)
	}
	if c.GrpcHost == c.Host && c.GrpcPort == c.Port {
		return helpers.NewConfigurationError("http and grpc cannot share an address", nil)
	}

	if c.ShutdownTimeoutSeconds <= 0 {
		return helpers.NewConfigurationError("shutdown timeout must be greater than 0", nil)
	}

	return nil
}

// -----------------------------------------------------------------------------

// HTTPAddr returns host:port for the HTTP server
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// -----------------------------------------------------------------------------

// GRPCAddr returns host:port for the control plane
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.GrpcHost, c.GrpcPort)
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
