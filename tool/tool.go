// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (sensor reads, coordination messaging,
// side-effects) through a registry with uniform result envelopes and
// consistent error handling.
package tool

import "context"

// Status classifies the outcome of a tool execution.
type Status string

const (
	// StatusSuccess marks a completed execution whose Data field is valid.
	StatusSuccess Status = "success"
	// StatusError marks a failed execution; Message carries the reason.
	StatusError Status = "error"
)

// Func is a synchronous tool implementation. Arguments arrive as decoded
// JSON values; the returned value must be JSON-serializable.
type Func func(ctx context.Context, args map[string]any) (any, error)

// AsyncFunc is a channel-based tool implementation for slow sources such as
// sensor polls. Exactly one of the returned channels should yield; the
// executor also honors context cancellation while waiting.
type AsyncFunc func(ctx context.Context, args map[string]any) (<-chan any, <-chan error)

// Definition describes a callable tool: identity, model-facing schema and
// the implementation. Populate either Func or AsyncFunc; when both are set
// AsyncFunc wins.
type Definition struct {
	// Name is the unique tool identifier (snake_case recommended).
	Name string
	// Description is shown to models to guide tool selection.
	Description string
	// Parameters is a minimal JSON-Schema-like map describing accepted arguments.
	Parameters map[string]any
	// Domain groups related tools, e.g. "emergency" or "communication".
	Domain string
	// Func is the synchronous implementation.
	Func Func
	// AsyncFunc is the channel-based implementation.
	AsyncFunc AsyncFunc
}

// Async reports whether the definition uses the channel-based implementation.
func (d Definition) Async() bool { return d.AsyncFunc != nil }

// Spec is the model-facing view of a registered tool.
type Spec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	Domain      string         `json:"domain"`
}

// Provider supplies a related set of tool definitions for bulk registration.
type Provider interface {
	// Tools returns the definitions contributed by this provider.
	Tools() []Definition
}

// Result is the uniform execution envelope handed back to agents. Status
// indicates success or failure, Data carries the tool output on success,
// Message explains failures and Tool echoes the executed tool name. The
// envelope is designed to be serialized as-is into conversation turns.
type Result struct {
	Status  Status `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Tool    string `json:"tool,omitempty"`
}
