package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "local", cfg.Target.Mode)
	assert.Equal(t, "root", cfg.Target.User)
	assert.Equal(t, "busybox", cfg.Target.ProbeTool)
	assert.False(t, cfg.Target.RootCreate)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"SHELLFS_PORT":               "9000",
		"SHELLFS_HOST":               "127.0.0.1",
		"SHELLFS_TARGET_MODE":        "ssh",
		"SHELLFS_TARGET_ADDR":        "10.0.0.2:22",
		"SHELLFS_TARGET_USER":        "admin",
		"SHELLFS_TARGET_PROBE_TOOL":  "toybox",
		"SHELLFS_TARGET_ROOT_CREATE": "true",
		"SHELLFS_LOG_LEVEL":          "debug",
		"SHELLFS_LOG_DEV":            "true",
		"SHELLFS_RATE_LIMIT_RPS":     "500",
		"SHELLFS_RATE_LIMIT_BURST":   "1000",
		"SHELLFS_RATE_LIMIT_ENABLED": "false",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	assert.Equal(t, "ssh", cfg.Target.Mode)
	assert.Equal(t, "10.0.0.2:22", cfg.Target.Address)
	assert.Equal(t, "admin", cfg.Target.User)
	assert.Equal(t, "toybox", cfg.Target.ProbeTool)
	assert.True(t, cfg.Target.RootCreate)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("SHELLFS_PORT", "3000")
	require.NoError(t, err)
	defer os.Unsetenv("SHELLFS_PORT")

	err = os.Setenv("SHELLFS_LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("SHELLFS_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Defaults still apply for everything left unset.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "local", cfg.Target.Mode)
	assert.Equal(t, "busybox", cfg.Target.ProbeTool)
}

func TestTargetConfig(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		probeTool string
		wantMode  string
		wantTool  string
	}{
		{
			name:     "default values",
			wantMode: "local",
			wantTool: "busybox",
		},
		{
			name:     "ssh mode",
			mode:     "ssh",
			wantMode: "ssh",
			wantTool: "busybox",
		},
		{
			name:      "alternate probe tool",
			probeTool: "toybox",
			wantMode:  "local",
			wantTool:  "toybox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("SHELLFS_TARGET_MODE")
			os.Unsetenv("SHELLFS_TARGET_PROBE_TOOL")

			if tt.mode != "" {
				err := os.Setenv("SHELLFS_TARGET_MODE", tt.mode)
				require.NoError(t, err)
				defer os.Unsetenv("SHELLFS_TARGET_MODE")
			}
			if tt.probeTool != "" {
				err := os.Setenv("SHELLFS_TARGET_PROBE_TOOL", tt.probeTool)
				require.NoError(t, err)
				defer os.Unsetenv("SHELLFS_TARGET_PROBE_TOOL")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantMode, cfg.Target.Mode)
			assert.Equal(t, tt.wantTool, cfg.Target.ProbeTool)
		})
	}
}
