package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. DASHBOARD_PORT
const EnvPrefix = "DASHBOARD"

// -----------------------------------------------------------------------------

// LoadDotEnv loads KEY=VALUE files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file '%s': %w", p, err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// ApplyEnv overlays DASHBOARD_* environment variables and re-validates
func (c *Config) ApplyEnv() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.IsSet("name") {
		c.Name = v.GetString("name")
	}
	if v.IsSet("host") {
		c.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		c.Port = v.GetInt("port")
	}
	if v.IsSet("log_level") {
		c.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("grpc_host") {
		c.GrpcHost = v.GetString("grpc_host")
	}
	if v.IsSet("grpc_port") {
		c.GrpcPort = v.GetInt("grpc_port")
	}
	if v.IsSet("shutdown_timeout_seconds") {
		c.ShutdownTimeoutSeconds = v.GetInt("shutdown_timeout_seconds")
	}
	if v.IsSet("cors_origin_prefix") {
		c.CorsOriginPrefix = v.GetString("cors_origin_prefix")
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation failed after env overlay: %w", err)
	}
	return nil
}
