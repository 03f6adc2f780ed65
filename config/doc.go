// Package config loads the runtime configuration for the coordination
// system. Values are resolved in three layers: compiled-in defaults, an
// optional YAML file, then ONE_MINUTE_* environment variables. A dotenv
// file is read before the environment layer so provider API keys (for
// example OPENAI_API_KEY) land in the process environment where the SDK
// clients expect them.
package config
