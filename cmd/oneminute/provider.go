package main

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/one-minute-gemma/one-minute-agent/config"
	"github.com/one-minute-gemma/one-minute-agent/model"
	"github.com/one-minute-gemma/one-minute-agent/model/anthropic"
	"github.com/one-minute-gemma/one-minute-agent/model/gemini"
	"github.com/one-minute-gemma/one-minute-agent/model/ollama"
	"github.com/one-minute-gemma/one-minute-agent/model/openai"
)

// buildProvider creates the model provider named by the configuration. The
// built-in model name belongs to the default provider; when the provider is
// switched without naming a model, each adapter keeps its own default.
func buildProvider(ctx context.Context, cfg config.Config) (model.Provider, error) {
	defaults := config.Default()
	name := cfg.Model.DefaultName
	if name == defaults.Model.DefaultName && !strings.EqualFold(cfg.Model.Provider, defaults.Model.Provider) {
		name = ""
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Model.Provider)) {
	case "", "ollama":
		return ollama.New(func(o *ollama.Options) {
			if name != "" {
				o.Model = name
			}
		})
	case "openai":
		return openai.New(func(o *openai.Options) {
			if name != "" {
				o.Model = name
			}
		}), nil
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if name != "" {
				o.Model = anthropicsdk.Model(name)
			}
		}), nil
	case "gemini":
		return gemini.New(ctx, func(o *gemini.Options) {
			if name != "" {
				o.Model = name
			}
		})
	case "mock":
		return model.NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
