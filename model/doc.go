// Package model defines the provider-agnostic abstraction and concrete
// helpers for talking to language models inside the coordination core.
//
// Core goals:
//   - Keep the Chat contract minimal: conversation in, raw text out
//   - Leave response parsing to agents so providers stay interchangeable
//   - Facilitate deterministic mocking for tests and demos (Mock)
//
// Providers (Ollama, OpenAI, Anthropic, Gemini) implement the Provider
// interface from subpackages so higher layers (agents, coordination) remain
// decoupled from vendor SDKs.
package model
