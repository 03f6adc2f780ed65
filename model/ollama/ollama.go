// Package ollama provides a model.Provider backed by a local Ollama server
// through the langchaingo client.
package ollama

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/one-minute-gemma/one-minute-agent/core"
	"github.com/one-minute-gemma/one-minute-agent/model"
)

// Options configure the Ollama provider adapter. Format defaults to "json"
// because agents expect reasoning-format payloads; set it to "" to let the
// model answer free-form.
type Options struct {
	Model       string
	ServerURL   string
	Temperature float64
	Format      string
}

// Provider wraps an Ollama-served model behind the generic model.Provider
// interface.
type Provider struct {
	llm  *ollama.LLM
	opts Options
}

var _ model.Provider = (*Provider)(nil)

// New creates a new Ollama provider. The default server URL is langchaingo's
// (http://localhost:11434).
func New(optFns ...func(o *Options)) (*Provider, error) {
	opts := Options{
		Model:       "gemma3n:latest",
		Temperature: 0.7,
		Format:      "json",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	llmOpts := []ollama.Option{ollama.WithModel(opts.Model)}
	if opts.ServerURL != "" {
		llmOpts = append(llmOpts, ollama.WithServerURL(opts.ServerURL))
	}
	if opts.Format != "" {
		llmOpts = append(llmOpts, ollama.WithFormat(opts.Format))
	}

	llm, err := ollama.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}

	return &Provider{llm: llm, opts: opts}, nil
}

// Chat implements model.Provider.
func (p *Provider) Chat(ctx context.Context, messages []core.Message, systemPrompt string) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages)+1)

	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}

	for _, m := range messages {
		content = append(content, llms.TextParts(roleToMessageType(m.Role), m.Content))
	}

	resp, err := p.llm.GenerateContent(ctx, content, llms.WithTemperature(p.opts.Temperature))
	if err != nil {
		return "", fmt.Errorf("ollama api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return resp.Choices[0].Content, nil
}

func roleToMessageType(role core.Role) llms.ChatMessageType {
	switch role {
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}

// Info returns metadata describing this Ollama provider.
func (p *Provider) Info() model.Info {
	return model.Info{Name: p.opts.Model, Provider: "ollama"}
}
