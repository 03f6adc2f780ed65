package agent

import (
	"context"
	"sync"

	"github.com/one-minute-gemma/one-minute-agent/core"
	"github.com/one-minute-gemma/one-minute-agent/logging"
	"github.com/one-minute-gemma/one-minute-agent/model"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

// ToolRunner is the consumer-side view of the tool executor. Execute never
// returns a Go error; failures arrive as error-status result envelopes.
type ToolRunner interface {
	Execute(ctx context.Context, name string, args map[string]any) tool.Result
	AvailableTools() map[string]tool.Spec
}

// Options configure an Agent. The zero values are completed by New;
// presets (NewOperator, NewVictimAssistant) override the domain-specific
// fields.
type Options struct {
	// MaxIterations bounds the reasoning rounds before finalization.
	// Values below 1 are clamped to 1.
	MaxIterations int
	// ShowThinking logs each reasoning step at info level.
	ShowThinking bool
	// AlwaysReason forces the reasoning loop for every input.
	AlwaysReason bool
	// ReasonTriggers selects the reasoning loop when AlwaysReason is off:
	// any trigger appearing as a substring of the lowercased input wins.
	ReasonTriggers []string
	// PromptTemplate is the persona section of the system prompt. It may
	// carry text/template markers; {{.name}} expands to the agent name.
	PromptTemplate string
	// ToolsHeading titles the tool catalogue section of the system prompt.
	ToolsHeading string
	// Reminder is appended to the system prompt as a closing instruction.
	Reminder string
	// DefaultThought fills the thought field when the model omits it.
	DefaultThought string
	// FinalizeAnswer post-processes the parsed final answer (for example
	// rewriting third-person instructions into direct address).
	FinalizeAnswer func(answer string) string
	// Logger receives chat and reasoning diagnostics.
	Logger logging.Logger
}

// Agent manages one conversation against a model provider, optionally
// grounding its answers through tools. All exported methods are
// goroutine-safe; Chat holds the agent lock for the whole turn, so
// concurrent callers are serialized.
type Agent struct {
	name     string
	provider model.Provider
	tools    ToolRunner
	opts     Options
	logger   logging.Logger

	mu       sync.Mutex
	messages []core.Message
}

// New constructs an Agent. The tool runner may be nil for purely
// conversational agents; any reasoning step that requests a tool then stops
// the loop.
func New(name string, provider model.Provider, tools ToolRunner, optFns ...func(o *Options)) *Agent {
	opts := Options{
		MaxIterations:  3,
		AlwaysReason:   true,
		ToolsHeading:   "AVAILABLE TOOLS",
		DefaultThought: "Analyzing the situation...",
		Logger:         logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxIterations < 1 {
		opts.MaxIterations = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Agent{
		name:     name,
		provider: provider,
		tools:    tools,
		opts:     opts,
		logger:   opts.Logger,
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Chat handles one user turn and always returns a well-formed response.
// Any failure rolls the conversation back to its pre-turn state and is
// reported through metadata["error"], never as a Go error.
func (a *Agent) Chat(ctx context.Context, input string) *core.AgentResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	mark := len(a.messages)
	a.messages = append(a.messages, core.NewUserMessage(input))

	reason := a.shouldReason(input)
	a.logger.Debug("agent.chat.start", "agent", a.name, "reasoning", reason)

	var (
		resp *core.AgentResponse
		err  error
	)
	if reason {
		resp, err = a.reasoningLoop(ctx)
	} else {
		resp, err = a.simpleResponse(ctx)
	}
	if err != nil {
		a.logger.Error("agent.chat.error", "agent", a.name, "error", err.Error())
		a.messages = a.messages[:mark]

		return &core.AgentResponse{
			Content:       "I encountered an error processing your request. Please try again.",
			ToolsExecuted: []core.ToolCall{},
			Metadata:      map[string]any{"error": err.Error()},
		}
	}

	a.logger.Debug("agent.chat.done", "agent", a.name, "tools", len(resp.ToolsExecuted))

	return resp
}

// ClearHistory resets the conversation.
func (a *Agent) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.messages = nil
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []core.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]core.Message(nil), a.messages...)
}
