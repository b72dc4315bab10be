// Package config holds all application configuration, loaded from YAML files
// layered with environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can use "30s" style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Environment names the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config holds all application configuration
type Config struct {
	Environment Environment `yaml:"environment"`

	Server   Server   `yaml:"server"`
	Upstream Upstream `yaml:"upstream"`
	Auth     Auth     `yaml:"auth"`
	Logging  Logging  `yaml:"logging"`
	Features Features `yaml:"features"`
	CORS     CORS     `yaml:"cors"`

	// LoadedFrom tracks the sources that contributed to this configuration.
	LoadedFrom []string `yaml:"-"`
}

// Server configures the HTTP listener.
type Server struct {
	Address         string   `yaml:"address"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// Upstream configures the municipal API client.
type Upstream struct {
	BaseURL  string   `yaml:"base_url"`
	APIToken string   `yaml:"api_token"`
	Timeout  Duration `yaml:"timeout"`
}

// Auth configures bearer token validation.
type Auth struct {
	JWTSecret         string `yaml:"jwt_secret"`
	JWTIssuer         string `yaml:"jwt_issuer"`
	JWTAudience       string `yaml:"jwt_audience"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Features holds runtime feature flags.
type Features struct {
	EnableMetrics   bool `yaml:"enable_metrics"`
	EnableHotReload bool `yaml:"enable_hot_reload"`
}

// CORS narrows the origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig loads configuration from YAML files and environment variables.
func LoadConfig() (*Config, error) {
	loader := NewLoader(getEnv("CONFIG_DIR", "config"), getEnvironment())
	return loader.Load()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base_url is required")
	}
	if c.Environment == Production {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.Upstream.APIToken == "" {
			return fmt.Errorf("UPSTREAM_API_TOKEN is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

func getEnvironment() Environment {
	switch getEnv("ENVIRONMENT", "development") {
	case "production":
		return Production
	case "staging":
		return Staging
	default:
		return Development
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
