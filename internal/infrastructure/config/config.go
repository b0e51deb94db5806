// Package config loads shellfs configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Target    TargetConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// TargetConfig describes the remote target and its command channel.
type TargetConfig struct {
	// Mode selects the transport: "ssh" or "local".
	Mode        string `envconfig:"TARGET_MODE" default:"local"`
	Address     string `envconfig:"TARGET_ADDR" default:""`
	User        string `envconfig:"TARGET_USER" default:"root"`
	Password    string `envconfig:"TARGET_PASSWORD" default:""`
	KeyPath     string `envconfig:"TARGET_KEY_PATH" default:""`
	RootCommand string `envconfig:"TARGET_ROOT_COMMAND" default:""`
	ProbeTool   string `envconfig:"TARGET_PROBE_TOOL" default:"busybox"`
	UsePTY      bool   `envconfig:"TARGET_USE_PTY" default:"false"`
	// RootCreate routes file creation through the privileged channel.
	RootCreate bool `envconfig:"TARGET_ROOT_CREATE" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables with the SHELLFS
// prefix.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("shellfs", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Target: TargetConfig{
			Mode:      "local",
			User:      "root",
			ProbeTool: "busybox",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
	}
}
