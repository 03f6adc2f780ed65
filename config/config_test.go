package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// -------------------- Default Tests --------------------

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemma3n:latest", cfg.Model.DefaultName)
	assert.Equal(t, "ollama", cfg.Model.Provider)
	assert.Equal(t, 2, cfg.Agent.MaxIterations)
	assert.False(t, cfg.Agent.ShowThinking)
	assert.Equal(t, 2, cfg.Tools.MaxToolsPerConversation)
	assert.Equal(t, "sample_images", cfg.Tools.ImageDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 1000, cfg.Events.Capacity)
}

func TestLogLevelParsing(t *testing.T) {
	cfg := Default()
	assert.Equal(t, logging.LogLevelInfo, cfg.LogLevel())

	cfg.Log.Level = "debug"
	assert.Equal(t, logging.LogLevelDebug, cfg.LogLevel())

	cfg.Log.Level = "nonsense"
	assert.Equal(t, logging.LogLevelInfo, cfg.LogLevel())
}

// -------------------- Load Tests --------------------

func TestLoadWithoutFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(func(o *LoadOptions) {
		o.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	})

	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "model:\n  provider: mock\nagent:\n  max_iterations: 5\n  show_thinking: true\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(func(o *LoadOptions) {
		o.Path = path
		o.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	})

	assert.NoError(t, err)
	assert.Equal(t, "mock", cfg.Model.Provider)
	assert.Equal(t, 5, cfg.Agent.MaxIterations)
	assert.True(t, cfg.Agent.ShowThinking)
	// Untouched sections keep their defaults.
	assert.Equal(t, "gemma3n:latest", cfg.Model.DefaultName)
	assert.Equal(t, 1000, cfg.Events.Capacity)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(func(o *LoadOptions) {
		o.Path = filepath.Join(t.TempDir(), "nope.yaml")
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("model: [broken"), 0o644))

	_, err := Load(func(o *LoadOptions) { o.Path = path })

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

// -------------------- Environment Tests --------------------

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ONE_MINUTE_MODEL", "llama3")
	t.Setenv("ONE_MINUTE_MODEL_PROVIDER", "openai")
	t.Setenv("ONE_MINUTE_MAX_ITERATIONS", "7")
	t.Setenv("ONE_MINUTE_SHOW_THINKING", "true")
	t.Setenv("ONE_MINUTE_EVENT_CAPACITY", "50")

	cfg, err := Load(func(o *LoadOptions) {
		o.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	})

	assert.NoError(t, err)
	assert.Equal(t, "llama3", cfg.Model.DefaultName)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, 7, cfg.Agent.MaxIterations)
	assert.True(t, cfg.Agent.ShowThinking)
	assert.Equal(t, 50, cfg.Events.Capacity)
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("model:\n  provider: mock\n"), 0o644))
	t.Setenv("ONE_MINUTE_MODEL_PROVIDER", "anthropic")

	cfg, err := Load(func(o *LoadOptions) {
		o.Path = path
		o.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	})

	assert.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
}

func TestEnvUnparsableValuesIgnored(t *testing.T) {
	t.Setenv("ONE_MINUTE_MAX_ITERATIONS", "many")
	t.Setenv("ONE_MINUTE_SHOW_THINKING", "sure")
	t.Setenv("ONE_MINUTE_MODEL", "   ")

	cfg, err := Load(func(o *LoadOptions) {
		o.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, cfg.Agent.MaxIterations)
	assert.False(t, cfg.Agent.ShowThinking)
	assert.Equal(t, "gemma3n:latest", cfg.Model.DefaultName)
}

func TestEnvFileFeedsEnvironment(t *testing.T) {
	assert.NoError(t, os.Unsetenv("ONE_MINUTE_LOG_LEVEL"))
	t.Cleanup(func() { os.Unsetenv("ONE_MINUTE_LOG_LEVEL") })

	envFile := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(envFile, []byte("ONE_MINUTE_LOG_LEVEL=debug\n"), 0o644))

	cfg, err := Load(func(o *LoadOptions) { o.EnvFile = envFile })

	assert.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}
