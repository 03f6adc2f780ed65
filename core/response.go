package core

// ToolCall records a single tool invocation made during a reasoning loop,
// pairing the requested arguments with the executor's result envelope.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Result any            `json:"result"`
}

// AgentResponse is the final outcome of a chat turn. Content holds the
// user-facing answer; ToolsExecuted preserves the invocation order.
type AgentResponse struct {
	Content       string         `json:"content"`
	ToolsExecuted []ToolCall     `json:"tools_executed,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}
