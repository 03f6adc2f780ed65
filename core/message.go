package core

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks turns originating from the human (or upstream caller).
	RoleUser Role = "user"
	// RoleAssistant marks turns produced by the agent itself.
	RoleAssistant Role = "assistant"
	// RoleSystem marks injected turns such as tool results or instructions.
	RoleSystem Role = "system"
)

// Message is a single turn in an agent conversation. Metadata carries
// auxiliary details (tool names, error context) that never reach the model.
type Message struct {
	Role     Role           `json:"role"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewUserMessage creates a user-authored turn.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-authored turn.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NewSystemMessage creates a system turn, used for tool results injected
// into the conversation during a reasoning loop.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}
