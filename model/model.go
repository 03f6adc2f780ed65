package model

import (
	"context"

	"github.com/one-minute-gemma/one-minute-agent/core"
)

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "ollama", "openai", "anthropic", "gemini", "mock"
}

// Provider is the minimal interface required by agents to drive generation.
// Chat sends the conversation plus a system prompt and returns the raw model
// text; callers own all parsing of the returned payload, so providers remain
// interchangeable regardless of how well a given model follows the requested
// output format.
type Provider interface {
	Chat(ctx context.Context, messages []core.Message, systemPrompt string) (string, error)

	// Info returns information about the provider implementation.
	Info() Info
}
