// Package config provides unified configuration for the aibackend service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. .env file in the working directory (never overrides the real environment)
//  3. YAML config file (discovered or explicitly specified)
//  4. Environment variable overrides (AIBACKEND_ prefix, plus OPENAI_API_KEY)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Config holds all configuration for the aibackend service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Engine        EngineConfig        `yaml:"engine"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8000
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 300s, must exceed 2x engine.timeout
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
	CORSOrigins     []string      `yaml:"cors_origins"`     // default: the SvelteKit dev and preview origins
}

// EngineConfig holds completion backend settings.
type EngineConfig struct {
	Provider     string            `yaml:"provider"`      // "openai" or "litellm", default: "openai"
	BaseURL      string            `yaml:"base_url"`      // default: https://api.openai.com
	APIKey       string            `yaml:"api_key"`       // optional
	APIKeyFile   string            `yaml:"api_key_file"`  // _file variant for api_key
	Model        string            `yaml:"model"`         // default: gpt-3.5-turbo
	Timeout      time.Duration     `yaml:"timeout"`       // default: 120s
	ModelMapping map[string]string `yaml:"model_mapping"` // optional
}

// StorageConfig holds item store settings.
type StorageConfig struct {
	Seed bool `yaml:"seed"` // default: true
}

// LoggingConfig holds log level and debug category settings. The
// AIBACKEND_LOG_LEVEL and AIBACKEND_DEBUG environment variables take
// precedence at logger setup.
type LoggingConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated categories, "all" for everything
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    300 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
			CORSOrigins:     []string{"http://localhost:5173", "http://localhost:4173"},
		},
		Engine: EngineConfig{
			Provider: "openai",
			BaseURL:  "https://api.openai.com",
			Model:    "gpt-3.5-turbo",
			Timeout:  120 * time.Second,
		},
		Storage: StorageConfig{
			Seed: true,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
