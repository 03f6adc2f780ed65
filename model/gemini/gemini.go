// Package gemini provides a model.Provider backed by the Google Gemini API
// via the google.golang.org/genai SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/one-minute-gemma/one-minute-agent/core"
	"github.com/one-minute-gemma/one-minute-agent/model"
)

// Options configure the Gemini provider adapter.
type Options struct {
	Model       string
	Temperature float32
	// JSONMode asks the API for application/json completions, which keeps
	// reasoning-format replies parseable without prompt gymnastics.
	JSONMode bool
	// APIKey overrides the GEMINI_API_KEY environment variable.
	APIKey string
}

// Provider wraps the Gemini API behind the generic model.Provider interface.
type Provider struct {
	client *genai.Client
	opts   Options
}

var _ model.Provider = (*Provider)(nil)

// New creates a new Gemini provider. Without an explicit APIKey option the
// SDK reads GEMINI_API_KEY from the environment.
func New(ctx context.Context, optFns ...func(o *Options)) (*Provider, error) {
	opts := Options{
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Provider{client: client, opts: opts}, nil
}

// NewFromClient creates a new Gemini provider from an existing client.
func NewFromClient(client *genai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Provider{client: client, opts: opts}
}

// Chat implements model.Provider.
func (p *Provider) Chat(ctx context.Context, messages []core.Message, systemPrompt string) (string, error) {
	temperature := p.opts.Temperature

	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemPrompt)},
		}
	}

	if p.opts.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.Model, buildContents(messages), config)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return text.String(), nil
}

// buildContents converts conversation turns to Gemini contents. The API only
// knows user and model roles, so system turns emitted mid conversation
// (tool results) ride as user content.
func buildContents(messages []core.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		role := "user"
		if m.Role == core.RoleAssistant {
			role = "model"
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(m.Content)},
		})
	}

	return contents
}

// Info returns metadata describing this Gemini provider.
func (p *Provider) Info() model.Info {
	return model.Info{Name: p.opts.Model, Provider: "gemini"}
}
