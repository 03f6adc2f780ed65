package agent

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/one-minute-gemma/one-minute-agent/core"
	"github.com/one-minute-gemma/one-minute-agent/internal/util"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

// shouldReason decides between the reasoning loop and the single-shot path.
func (a *Agent) shouldReason(input string) bool {
	if a.opts.AlwaysReason {
		return true
	}

	lower := strings.ToLower(input)
	for _, trigger := range a.opts.ReasonTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}

	return false
}

// reasoningLoop runs bounded think-act rounds and then finalizes. Tool
// results are appended as system turns so the next round sees them. A tool
// runs at most once per loop; an unknown tool still round-trips through the
// executor so its error envelope lands in the conversation, then the loop
// stops.
func (a *Agent) reasoningLoop(ctx context.Context) (*core.AgentResponse, error) {
	executed := make([]core.ToolCall, 0)
	called := make(map[string]struct{})

	systemPrompt := a.buildSystemPrompt()

	iterations := 0
	for i := 0; i < a.opts.MaxIterations; i++ {
		iterations++

		if a.opts.ShowThinking {
			a.logger.Info("agent.reasoning.iteration", "agent", a.name, "round", i+1, "max", a.opts.MaxIterations)
		}

		raw, err := a.provider.Chat(ctx, a.messages, systemPrompt)
		if err != nil {
			return nil, err
		}

		step, ok := parseReasoning(raw, a.opts.DefaultThought)
		if !ok {
			a.logger.Debug("agent.reasoning.unparsable", "agent", a.name)
			break
		}

		if a.opts.ShowThinking {
			a.logger.Info("agent.reasoning.step", "agent", a.name, "thought", step.Thought, "action", step.Action)
		}

		if step.Action == "" || strings.EqualFold(step.Action, "none") {
			break
		}

		if a.tools == nil {
			break
		}

		if _, dup := called[step.Action]; dup {
			a.logger.Debug("agent.reasoning.duplicate", "agent", a.name, "tool", step.Action)
			break
		}

		_, known := a.tools.AvailableTools()[step.Action]

		result := a.tools.Execute(ctx, step.Action, step.ActionInput)

		payload, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}

		if known {
			executed = append(executed, core.ToolCall{
				Tool:   step.Action,
				Args:   step.ActionInput,
				Result: result,
			})
			called[step.Action] = struct{}{}
		}

		a.messages = append(a.messages, core.NewSystemMessage("Tool result: "+string(payload)))

		if !known {
			a.logger.Warn("agent.reasoning.unknown_tool", "agent", a.name, "tool", step.Action)
			break
		}
	}

	final, err := a.finalAnswer(ctx)
	if err != nil {
		return nil, err
	}

	a.messages = append(a.messages, core.NewAssistantMessage(final))

	return &core.AgentResponse{
		Content:       final,
		ToolsExecuted: executed,
		Metadata: map[string]any{
			"thinking_iterations": iterations,
			"tools_used":          len(executed),
		},
	}, nil
}

// simpleResponse answers without reasoning rounds.
func (a *Agent) simpleResponse(ctx context.Context) (*core.AgentResponse, error) {
	raw, err := a.provider.Chat(ctx, a.messages, a.buildSystemPrompt())
	if err != nil {
		return nil, err
	}

	final := parseFinalAnswer(raw)
	if a.opts.FinalizeAnswer != nil {
		final = a.opts.FinalizeAnswer(final)
	}

	a.messages = append(a.messages, core.NewAssistantMessage(final))

	return &core.AgentResponse{
		Content:       final,
		ToolsExecuted: []core.ToolCall{},
		Metadata:      map[string]any{"type": "simple"},
	}, nil
}

// finalAnswer issues the single finalization call.
func (a *Agent) finalAnswer(ctx context.Context) (string, error) {
	raw, err := a.provider.Chat(ctx, a.messages, finalAnswerPrompt)
	if err != nil {
		return "", err
	}

	answer := parseFinalAnswer(raw)
	if a.opts.FinalizeAnswer != nil {
		answer = a.opts.FinalizeAnswer(answer)
	}

	if a.opts.ShowThinking {
		a.logger.Info("agent.reasoning.final", "agent", a.name, "answer", answer)
	}

	return answer, nil
}

// buildSystemPrompt assembles the persona template, the JSON tool catalogue
// and the closing reminder. The persona template may use text/template
// markers; a template error falls back to the raw text rather than failing
// the turn.
func (a *Agent) buildSystemPrompt() string {
	specs := map[string]tool.Spec{}
	if a.tools != nil {
		specs = a.tools.AvailableTools()
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	persona := a.opts.PromptTemplate
	if rendered, err := util.RenderTemplate(persona, templateState(a.name, names)); err != nil {
		a.logger.Warn("agent.prompt.template_error", "agent", a.name, "error", err.Error())
	} else {
		persona = rendered
	}

	catalogue, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		catalogue = []byte("{}")
	}

	list := "None"
	if len(names) > 0 {
		list = strings.Join(names, ", ")
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n## ")
	b.WriteString(a.opts.ToolsHeading)
	b.WriteString(":\n")
	b.Write(catalogue)
	b.WriteString("\n\nAvailable tools: ")
	b.WriteString(list)
	if a.opts.Reminder != "" {
		b.WriteString("\n\nRemember: ")
		b.WriteString(a.opts.Reminder)
	}

	return b.String()
}

func templateState(name string, toolNames []string) map[string]any {
	tools := make([]any, len(toolNames))
	for i, n := range toolNames {
		tools[i] = n
	}

	return map[string]any{
		"name":  name,
		"tools": tools,
	}
}
