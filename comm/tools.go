package comm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/one-minute-gemma/one-minute-agent/logging"
	"github.com/one-minute-gemma/one-minute-agent/tool"
)

// ToolsOptions holds configuration overrides passed to NewVictimTools and
// NewOperatorTools.
type ToolsOptions struct {
	// Logger receives publish diagnostics.
	Logger logging.Logger
}

// commTools carries the wiring shared by both communication tool providers.
type commTools struct {
	bus    *EmergencyBus
	logger logging.Logger
}

func newCommTools(bus *EmergencyBus, optFns []func(o *ToolsOptions)) commTools {
	opts := ToolsOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return commTools{bus: bus, logger: opts.Logger}
}

// decodeArgs decodes loosely-typed model arguments into a typed struct.
// Weak typing tolerates a plain string where a list was expected.
func decodeArgs(args map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// normalizeAliases copies the first present alias value onto the canonical
// key when the canonical key itself is absent. Alias order matters: earlier
// spellings win.
func normalizeAliases(args map[string]any, canonical string, aliases ...string) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}

	if v, ok := out[canonical]; ok && v != nil {
		return out
	}

	for _, alias := range aliases {
		if v, ok := out[alias]; ok && v != nil {
			out[canonical] = v
			break
		}
	}

	return out
}

// coerceMap accepts the map a model should send, or coerces a plain string
// into {stringKey: s}. Nil and empty values produce the fallback.
func coerceMap(v any, stringKey string, fallback map[string]any) map[string]any {
	switch t := v.(type) {
	case nil:
		return fallback
	case map[string]any:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return fallback
		}
		return map[string]any{stringKey: t}
	default:
		return map[string]any{stringKey: fmt.Sprintf("%v", t)}
	}
}

// coerceETA accepts a number or numeric string; anything else means the
// arrival time is unknown.
func coerceETA(v any) *int {
	switch t := v.(type) {
	case int:
		n := t
		return &n
	case int64:
		n := int(t)
		return &n
	case float64:
		n := int(t)
		return &n
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

// commFailure builds the soft-failure envelope returned by communication
// tools. The reasoning loop forwards it to the model as a tool result
// instead of aborting the turn.
func commFailure(format string, err error, hint string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   fmt.Sprintf(format, err),
		"message": hint,
	}
}

func errMissingArg(name string) error {
	return fmt.Errorf("missing required argument %q", name)
}

// VictimTools exposes the victim assistant's coordination tools: situation
// updates, emergency escalation and status reporting toward the operator.
// Confirmation maps mirror the shape models are prompted to expect: a
// success flag, the message id and an echo of key fields.
type VictimTools struct {
	commTools
}

// NewVictimTools constructs the provider publishing on bus.
func NewVictimTools(bus *EmergencyBus, optFns ...func(o *ToolsOptions)) *VictimTools {
	return &VictimTools{commTools: newCommTools(bus, optFns)}
}

// Tools implements tool.Provider.
func (v *VictimTools) Tools() []tool.Definition {
	return []tool.Definition{
		{
			Name:        "send_situation_update",
			Description: "Send a situation update to the 911 operator with current emergency details",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"situation_description": map[string]any{"type": "string", "description": "Clear description of the emergency situation"},
					"victim_status":         map[string]any{"type": "object", "description": "Victim condition details; a plain string is accepted"},
					"environmental_hazards": map[string]any{"type": "array", "description": "Environmental dangers at the scene"},
					"immediate_needs":       map[string]any{"type": "array", "description": "Immediate assistance needed"},
					"priority":              map[string]any{"type": "string", "enum": []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}},
				},
				"required": []string{"situation_description"},
			},
			Domain: "communication",
			Func:   v.sendSituationUpdate,
		},
		{
			Name:        "request_emergency_escalation",
			Description: "Send a critical emergency escalation to the operator",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"escalation_reason":   map[string]any{"type": "string", "description": "Reason for the escalation"},
					"critical_details":    map[string]any{"type": "object", "description": "Critical situation details; a plain string is accepted"},
					"recommended_actions": map[string]any{"type": "array", "description": "Actions the operator should take"},
				},
				"required": []string{"escalation_reason"},
			},
			Domain: "communication",
			Func:   v.requestEmergencyEscalation,
		},
		{
			Name:        "send_victim_status_update",
			Description: "Send a general status update from the victim assistant to the operator",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status":  map[string]any{"type": "string", "description": "Status message"},
					"details": map[string]any{"type": "object", "description": "Additional status details; a plain string is accepted"},
				},
				"required": []string{"status"},
			},
			Domain: "communication",
			Func:   v.sendVictimStatusUpdate,
		},
	}
}

type situationUpdateArgs struct {
	SituationDescription string   `mapstructure:"situation_description"`
	VictimStatus         any      `mapstructure:"victim_status"`
	EnvironmentalHazards []string `mapstructure:"environmental_hazards"`
	ImmediateNeeds       []string `mapstructure:"immediate_needs"`
	Priority             string   `mapstructure:"priority"`
}

func (v *VictimTools) sendSituationUpdate(_ context.Context, raw map[string]any) (any, error) {
	var args situationUpdateArgs
	if err := decodeArgs(normalizeAliases(raw, "environmental_hazards", "environmental_hazaards"), &args); err != nil {
		return commFailure("Failed to send situation update: %s", err, "Communication tool error - please try again"), nil
	}
	if strings.TrimSpace(args.SituationDescription) == "" {
		return commFailure("Failed to send situation update: %s", errMissingArg("situation_description"), "Communication tool error - please try again"), nil
	}

	priority := ParsePriority(args.Priority)

	msg := NewSituationUpdate(
		args.SituationDescription,
		coerceMap(args.VictimStatus, "description", map[string]any{"status": "unknown"}),
		args.EnvironmentalHazards,
		args.ImmediateNeeds,
		priority,
	)

	ok := v.bus.Publish(msg)
	v.logger.Debug("comm.situation_update.sent", "message_id", msg.ID, "priority", priority.String())

	return map[string]any{
		"success":    ok,
		"message_id": msg.ID,
		"sent_to":    "911 Operator",
		"priority":   strings.ToUpper(priority.String()),
		"message":    fmt.Sprintf("Situation update sent: %s...", truncate(args.SituationDescription, 50)),
	}, nil
}

type escalationArgs struct {
	EscalationReason   string   `mapstructure:"escalation_reason"`
	CriticalDetails    any      `mapstructure:"critical_details"`
	RecommendedActions []string `mapstructure:"recommended_actions"`
}

func (v *VictimTools) requestEmergencyEscalation(_ context.Context, raw map[string]any) (any, error) {
	normalized := normalizeAliases(raw, "recommended_actions",
		"recommendeed_actions",
		"recommendeeed_actions",
		"reccomended_actions",
		"recomended_actions",
		"actions",
		"suggested_actions",
	)

	var args escalationArgs
	if err := decodeArgs(normalized, &args); err != nil {
		return commFailure("Failed to send escalation: %s", err, "Emergency escalation failed - please try again"), nil
	}
	if strings.TrimSpace(args.EscalationReason) == "" {
		return commFailure("Failed to send escalation: %s", errMissingArg("escalation_reason"), "Emergency escalation failed - please try again"), nil
	}

	actions := args.RecommendedActions
	if actions == nil {
		actions = []string{"immediate emergency response required"}
	}

	msg := NewEmergencyEscalation(
		RoleVictimAssistant,
		args.EscalationReason,
		coerceMap(args.CriticalDetails, "description", map[string]any{"reason": args.EscalationReason}),
		actions,
	)

	ok := v.bus.Publish(msg)
	v.logger.Warn("comm.escalation.sent", "message_id", msg.ID, "reason", truncate(args.EscalationReason, 50))

	return map[string]any{
		"success":         ok,
		"message_id":      msg.ID,
		"escalation_sent": true,
		"priority":        "CRITICAL",
		"message":         fmt.Sprintf("Emergency escalation sent: %s...", truncate(args.EscalationReason, 50)),
	}, nil
}

type statusArgs struct {
	Status  string `mapstructure:"status"`
	Details any    `mapstructure:"details"`
}

func (v *VictimTools) sendVictimStatusUpdate(_ context.Context, raw map[string]any) (any, error) {
	var args statusArgs
	if err := decodeArgs(raw, &args); err != nil {
		return commFailure("Failed to send status: %s", err, "Status update failed - please try again"), nil
	}
	if strings.TrimSpace(args.Status) == "" {
		return commFailure("Failed to send status: %s", errMissingArg("status"), "Status update failed - please try again"), nil
	}

	msg := NewStatusUpdate(RoleVictimAssistant, RoleOperator, args.Status, coerceMap(args.Details, "description", map[string]any{}))

	ok := v.bus.Publish(msg)
	v.logger.Debug("comm.status_update.sent", "message_id", msg.ID, "sender", string(RoleVictimAssistant))

	return map[string]any{
		"success":     ok,
		"message_id":  msg.ID,
		"status_sent": true,
		"message":     fmt.Sprintf("Status update sent: %s...", truncate(args.Status, 50)),
	}, nil
}

// OperatorTools exposes the operator agent's coordination tools: dispatch
// updates and status reporting toward the victim assistant.
type OperatorTools struct {
	commTools
}

// NewOperatorTools constructs the provider publishing on bus.
func NewOperatorTools(bus *EmergencyBus, optFns ...func(o *ToolsOptions)) *OperatorTools {
	return &OperatorTools{commTools: newCommTools(bus, optFns)}
}

// Tools implements tool.Provider.
func (o *OperatorTools) Tools() []tool.Definition {
	return []tool.Definition{
		{
			Name:        "send_dispatch_update",
			Description: "Send a dispatch update to the victim assistant",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"responder_eta":           map[string]any{"type": "integer", "description": "Estimated time of arrival in minutes"},
					"responder_types":         map[string]any{"type": "array", "description": "Types of responders (fire, medical, police)"},
					"instructions_for_victim": map[string]any{"type": "string", "description": "Instructions for the victim"},
					"dispatch_status":         map[string]any{"type": "string", "enum": []string{"dispatched", "en_route", "on_scene"}},
				},
			},
			Domain: "communication",
			Func:   o.sendDispatchUpdate,
		},
		{
			Name:        "send_operator_status",
			Description: "Send an operator status update to the victim assistant",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status":  map[string]any{"type": "string", "description": "Status message"},
					"details": map[string]any{"type": "object", "description": "Additional details; a plain string is accepted"},
				},
				"required": []string{"status"},
			},
			Domain: "communication",
			Func:   o.sendOperatorStatus,
		},
	}
}

type dispatchArgs struct {
	ResponderETA          any      `mapstructure:"responder_eta"`
	ResponderTypes        []string `mapstructure:"responder_types"`
	InstructionsForVictim string   `mapstructure:"instructions_for_victim"`
	DispatchStatus        string   `mapstructure:"dispatch_status"`
}

func (o *OperatorTools) sendDispatchUpdate(_ context.Context, raw map[string]any) (any, error) {
	var args dispatchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return commFailure("Failed to send dispatch update: %s", err, "Dispatch update failed - please try again"), nil
	}

	status := args.DispatchStatus
	if strings.TrimSpace(status) == "" {
		status = "dispatched"
	}

	eta := coerceETA(args.ResponderETA)

	msg := NewDispatchUpdate(eta, args.ResponderTypes, args.InstructionsForVictim, status)

	ok := o.bus.Publish(msg)
	o.logger.Debug("comm.dispatch_update.sent", "message_id", msg.ID, "status", status)

	var etaValue any
	etaDisplay := "unknown"
	if eta != nil {
		etaValue = *eta
		etaDisplay = strconv.Itoa(*eta)
	}

	return map[string]any{
		"success":              ok,
		"message_id":           msg.ID,
		"dispatch_update_sent": true,
		"eta":                  etaValue,
		"status":               status,
		"message":              fmt.Sprintf("Dispatch update sent: %s, ETA %s min", status, etaDisplay),
	}, nil
}

func (o *OperatorTools) sendOperatorStatus(_ context.Context, raw map[string]any) (any, error) {
	var args statusArgs
	if err := decodeArgs(raw, &args); err != nil {
		return commFailure("Failed to send status: %s", err, "Operator status update failed - please try again"), nil
	}
	if strings.TrimSpace(args.Status) == "" {
		return commFailure("Failed to send status: %s", errMissingArg("status"), "Operator status update failed - please try again"), nil
	}

	msg := NewStatusUpdate(RoleOperator, RoleVictimAssistant, args.Status, coerceMap(args.Details, "description", map[string]any{}))

	ok := o.bus.Publish(msg)
	o.logger.Debug("comm.status_update.sent", "message_id", msg.ID, "sender", string(RoleOperator))

	return map[string]any{
		"success":              ok,
		"message_id":           msg.ID,
		"operator_status_sent": true,
		"message":              fmt.Sprintf("Operator status sent: %s...", truncate(args.Status, 50)),
	}, nil
}
