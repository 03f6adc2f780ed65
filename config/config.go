package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// defaultPath is tried when no config file is given. A missing file at the
// default path is not an error.
const defaultPath = "config.yaml"

// Model selects the language model backend.
type Model struct {
	// DefaultName is the model identifier passed to the provider.
	DefaultName string `yaml:"default_name"`
	// Provider picks the backend: ollama, openai, anthropic, gemini or mock.
	Provider string `yaml:"provider"`
}

// Agent tunes the reasoning loop.
type Agent struct {
	// MaxIterations bounds reasoning rounds per turn.
	MaxIterations int `yaml:"max_iterations"`
	// ShowThinking logs each reasoning step.
	ShowThinking bool `yaml:"show_thinking"`
}

// Tools configures the tool subsystem.
type Tools struct {
	// MaxToolsPerConversation caps distinct tool executions per turn.
	MaxToolsPerConversation int `yaml:"max_tools_per_conversation"`
	// ImageDir is where the video sensor looks for sample captures.
	ImageDir string `yaml:"image_dir"`
}

// Log configures diagnostic output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Events configures the coordination audit log.
type Events struct {
	// Capacity bounds the in-memory event log.
	Capacity int `yaml:"capacity"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Model  Model  `yaml:"model"`
	Agent  Agent  `yaml:"agent"`
	Tools  Tools  `yaml:"tools"`
	Log    Log    `yaml:"log"`
	Events Events `yaml:"events"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Model: Model{
			DefaultName: "gemma3n:latest",
			Provider:    "ollama",
		},
		Agent: Agent{
			MaxIterations: 2,
			ShowThinking:  false,
		},
		Tools: Tools{
			MaxToolsPerConversation: 2,
			ImageDir:                "sample_images",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Events: Events{
			Capacity: 1000,
		},
	}
}

// LogLevel resolves the configured level name.
func (c Config) LogLevel() logging.LogLevel {
	return logging.ParseLogLevel(c.Log.Level)
}

// LoadOptions holds configuration overrides passed to Load.
type LoadOptions struct {
	// Path is the YAML config file. When set, the file must exist; when
	// empty, config.yaml is tried and silently skipped if absent.
	Path string
	// EnvFile is the dotenv file read before environment overrides.
	// Missing files are skipped.
	EnvFile string
}

// Load resolves the configuration: defaults, then the YAML file, then
// ONE_MINUTE_* environment variables. The dotenv file never overrides
// variables already present in the environment.
func Load(optFns ...func(o *LoadOptions)) (Config, error) {
	opts := LoadOptions{
		EnvFile: ".env",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := Default()

	_ = godotenv.Load(opts.EnvFile)

	path := opts.Path
	required := path != ""
	if path == "" {
		path = defaultPath
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case required:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)

	return cfg, nil
}

// applyEnv layers ONE_MINUTE_* variables over cfg. Unparsable numeric or
// boolean values leave the current value in place.
func applyEnv(cfg *Config) {
	cfg.Model.DefaultName = envString("ONE_MINUTE_MODEL", cfg.Model.DefaultName)
	cfg.Model.Provider = envString("ONE_MINUTE_MODEL_PROVIDER", cfg.Model.Provider)
	cfg.Agent.MaxIterations = envInt("ONE_MINUTE_MAX_ITERATIONS", cfg.Agent.MaxIterations)
	cfg.Agent.ShowThinking = envBool("ONE_MINUTE_SHOW_THINKING", cfg.Agent.ShowThinking)
	cfg.Tools.MaxToolsPerConversation = envInt("ONE_MINUTE_MAX_TOOLS", cfg.Tools.MaxToolsPerConversation)
	cfg.Tools.ImageDir = envString("ONE_MINUTE_IMAGE_DIR", cfg.Tools.ImageDir)
	cfg.Log.Level = envString("ONE_MINUTE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envString("ONE_MINUTE_LOG_FORMAT", cfg.Log.Format)
	cfg.Events.Capacity = envInt("ONE_MINUTE_EVENT_CAPACITY", cfg.Events.Capacity)
}

func envString(key, current string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return current
}

func envInt(key string, current int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return current
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return current
	}
	return n
}

func envBool(key string, current bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return current
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return current
	}
	return b
}
