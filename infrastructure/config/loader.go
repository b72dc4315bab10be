package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader layers configuration sources: defaults, base.yaml, the
// environment-specific file, then environment variables on top.
type Loader struct {
	basePath    string
	environment Environment
	sources     []string
}

// NewLoader creates a new configuration loader.
func NewLoader(basePath string, env Environment) *Loader {
	if basePath == "" {
		basePath = "config"
	}
	return &Loader{basePath: basePath, environment: env}
}

// Load builds the final configuration. Missing files are skipped; parse
// errors are not.
func (l *Loader) Load() (*Config, error) {
	cfg := l.defaultConfig()
	l.sources = append(l.sources, "defaults")

	if err := l.loadFile("base", cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load base config: %w", err)
	}

	envFile := strings.ToLower(string(l.environment))
	if err := l.loadFile(envFile, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s config: %w", envFile, err)
	}

	l.loadEnvironmentVariables(cfg)
	l.sources = append(l.sources, "environment")
	cfg.LoadedFrom = l.sources

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(name string, cfg *Config) error {
	path := filepath.Join(l.basePath, name+".yaml")

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	l.sources = append(l.sources, path)
	return nil
}

// loadEnvironmentVariables overlays environment variables, the highest
// priority source.
func (l *Loader) loadEnvironmentVariables(cfg *Config) {
	if val := os.Getenv("SERVER_ADDRESS"); val != "" {
		cfg.Server.Address = val
	}
	if val := os.Getenv("UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("UPSTREAM_API_TOKEN"); val != "" {
		cfg.Upstream.APIToken = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		cfg.Auth.JWTSecret = val
	}
	if val := os.Getenv("JWT_ISSUER"); val != "" {
		cfg.Auth.JWTIssuer = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		cfg.CORS.AllowedOrigins = strings.Split(val, ",")
	}
	cfg.Features.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.Features.EnableMetrics)
	cfg.Features.EnableHotReload = getEnvBool("ENABLE_HOT_RELOAD", cfg.Features.EnableHotReload)
}

func (l *Loader) defaultConfig() *Config {
	return &Config{
		Environment: l.environment,
		Server: Server{
			Address:         ":8080",
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Upstream: Upstream{
			BaseURL: "http://localhost:9000",
			Timeout: Duration(10 * time.Second),
		},
		Auth: Auth{
			JWTIssuer:         "obras-backend",
			JWTAudience:       "obras-dashboard",
			RequestsPerMinute: 100,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
		Features: Features{
			EnableMetrics:   true,
			EnableHotReload: l.environment == Development,
		},
		CORS: CORS{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}
