package agent

import (
	"encoding/json"
	"strings"
)

// Reasoning is one parsed reasoning step. Action "None" (any casing) or ""
// means the model is ready for its final answer.
type Reasoning struct {
	Thought     string
	Action      string
	ActionInput map[string]any
}

// parseReasoning decodes a reasoning step, trying strict JSON first and
// falling back to the line-oriented heuristic. Missing fields are filled
// with defaults (defaultThought, "None", empty map); the second return is
// false when neither stage yields a usable step.
func parseReasoning(raw, defaultThought string) (Reasoning, bool) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil || parsed == nil {
		return parseMalformedReasoning(raw)
	}

	step := Reasoning{
		Thought:     defaultThought,
		Action:      "None",
		ActionInput: map[string]any{},
	}

	if thought, ok := parsed["thought"].(string); ok {
		step.Thought = thought
	}
	if action, ok := parsed["action"].(string); ok {
		step.Action = action
	}
	if input, ok := parsed["actionInput"].(map[string]any); ok {
		step.ActionInput = input
	}

	return step, true
}

// parseMalformedReasoning scans a non-JSON reply line by line for
// thought/action/actionInput markers. Extracted values are lowercased as a
// side effect of case-insensitive matching. Returns false when the scan
// finds neither a thought nor a non-"None" action.
func parseMalformedReasoning(raw string) (Reasoning, bool) {
	step := Reasoning{
		Action:      "None",
		ActionInput: map[string]any{},
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "thought:") || strings.Contains(lower, `"thought":`):
			step.Thought = extractValueFromLine(line, "thought")
		case strings.Contains(lower, "action:") || strings.Contains(lower, `"action":`):
			step.Action = extractValueFromLine(line, "action")
		case strings.Contains(lower, "actioninput:") || strings.Contains(lower, `"actioninput":`):
			step.ActionInput = map[string]any{}
			if value := extractValueFromLine(line, "actioninput"); value != "" && value != "null" {
				var input map[string]any
				if err := json.Unmarshal([]byte(value), &input); err == nil && input != nil {
					step.ActionInput = input
				}
			}
		}
	}

	if step.Thought == "" && step.Action == "None" {
		return Reasoning{}, false
	}

	return step, true
}

// extractValueFromLine pulls the value out of a line like
// `thought: "some value"`, preferring the quoted-key variant. The whole
// line is lowercased before splitting, matching values are trimmed of
// trailing commas and one layer of matching quotes.
func extractValueFromLine(line, key string) string {
	lower := strings.ToLower(line)

	var value string
	found := false
	for _, variant := range []string{`"` + key + `":`, key + ":"} {
		if idx := strings.Index(lower, variant); idx >= 0 {
			value = lower[idx+len(variant):]
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	value = strings.TrimSpace(value)
	value = strings.TrimRight(value, ",")

	if len(value) >= 2 {
		if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
			(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
			value = value[1 : len(value)-1]
		}
	}

	return value
}

// parseFinalAnswer extracts the answer field from a final-mode reply,
// falling back to the trimmed raw text when the reply is not a JSON object
// or carries no string answer.
func parseFinalAnswer(raw string) string {
	trimmed := strings.TrimSpace(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil || parsed == nil {
		return trimmed
	}

	if answer, ok := parsed["answer"].(string); ok {
		return answer
	}

	return trimmed
}
