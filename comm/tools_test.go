package comm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/one-minute-gemma/one-minute-agent/tool"
)

func victimToolFunc(t *testing.T, name string) (tool.Func, *EmergencyBus) {
	t.Helper()
	bus := NewEmergencyBus()
	for _, def := range NewVictimTools(bus).Tools() {
		if def.Name == name {
			return def.Func, bus
		}
	}
	t.Fatalf("victim tool %q not found", name)
	return nil, nil
}

func operatorToolFunc(t *testing.T, name string) (tool.Func, *EmergencyBus) {
	t.Helper()
	bus := NewEmergencyBus()
	for _, def := range NewOperatorTools(bus).Tools() {
		if def.Name == name {
			return def.Func, bus
		}
	}
	t.Fatalf("operator tool %q not found", name)
	return nil, nil
}

// -------------------- Provider Tests --------------------

func TestVictimToolsDefinitions(t *testing.T) {
	defs := NewVictimTools(NewEmergencyBus()).Tools()

	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
		assert.Equal(t, "communication", def.Domain)
		assert.NotNil(t, def.Func)
		assert.False(t, def.Async())
		assert.NotEmpty(t, def.Description)
	}
	assert.Equal(t, []string{"send_situation_update", "request_emergency_escalation", "send_victim_status_update"}, names)
}

func TestOperatorToolsDefinitions(t *testing.T) {
	defs := NewOperatorTools(NewEmergencyBus()).Tools()

	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
		assert.Equal(t, "communication", def.Domain)
		assert.False(t, def.Async())
	}
	assert.Equal(t, []string{"send_dispatch_update", "send_operator_status"}, names)
}

// -------------------- Situation Update Tests --------------------

func TestSendSituationUpdate(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	result, err := fn(context.Background(), map[string]any{
		"situation_description": "Person collapsed, not responding",
		"victim_status":         map[string]any{"conscious": false},
		"environmental_hazards": []string{"gas smell"},
		"immediate_needs":       []string{"ambulance"},
		"priority":              "critical",
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, true, confirmation["success"])
	assert.Equal(t, "911 Operator", confirmation["sent_to"])
	assert.Equal(t, "CRITICAL", confirmation["priority"])
	assert.Equal(t, "Situation update sent: Person collapsed, not responding...", confirmation["message"])
	assert.NotEmpty(t, confirmation["message_id"])

	history := bus.History(1)
	assert.Len(t, history, 1)
	msg := history[0]
	assert.Equal(t, confirmation["message_id"], msg.ID)
	assert.Equal(t, MessageTypeSituationUpdate, msg.Type)
	assert.Equal(t, PriorityCritical, msg.Priority)
	assert.Equal(t, map[string]any{"conscious": false}, msg.Content["victim_status"])
	assert.Equal(t, []string{"gas smell"}, msg.Content["environmental_hazards"])
}

func TestSendSituationUpdateCoercions(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	// Models frequently send strings where structured values belong.
	result, err := fn(context.Background(), map[string]any{
		"situation_description": "Chest pain reported",
		"victim_status":         "conscious but in pain",
		"environmental_hazards": "smoke",
		"priority":              "somewhat urgent",
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, "HIGH", confirmation["priority"])

	msg := bus.History(1)[0]
	assert.Equal(t, map[string]any{"description": "conscious but in pain"}, msg.Content["victim_status"])
	assert.Equal(t, []string{"smoke"}, msg.Content["environmental_hazards"])
	assert.Equal(t, []string{}, msg.Content["immediate_needs"])
}

func TestSendSituationUpdateDefaults(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	_, err := fn(context.Background(), map[string]any{
		"situation_description": "Unclear scene",
	})
	assert.NoError(t, err)

	msg := bus.History(1)[0]
	assert.Equal(t, map[string]any{"status": "unknown"}, msg.Content["victim_status"])
	assert.Equal(t, PriorityHigh, msg.Priority)
}

func TestSendSituationUpdateHazardAlias(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	_, err := fn(context.Background(), map[string]any{
		"situation_description": "Basement flooding",
		"environmental_hazaards": []string{"live wiring"},
	})
	assert.NoError(t, err)

	msg := bus.History(1)[0]
	assert.Equal(t, []string{"live wiring"}, msg.Content["environmental_hazards"])
}

func TestSendSituationUpdateMissingDescription(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	result, err := fn(context.Background(), map[string]any{"priority": "HIGH"})
	assert.NoError(t, err)

	failure := result.(map[string]any)
	assert.Equal(t, false, failure["success"])
	assert.Contains(t, failure["error"], "Failed to send situation update:")
	assert.Equal(t, "Communication tool error - please try again", failure["message"])
	assert.Empty(t, bus.History(0))
}

func TestSendSituationUpdateDecodeFailure(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_situation_update")

	result, err := fn(context.Background(), map[string]any{
		"situation_description": "Fire",
		"environmental_hazards": map[string]any{"bad": true},
	})
	assert.NoError(t, err)

	failure := result.(map[string]any)
	assert.Equal(t, false, failure["success"])
	assert.Equal(t, "Communication tool error - please try again", failure["message"])
	assert.Empty(t, bus.History(0))
}

// -------------------- Escalation Tests --------------------

func TestRequestEmergencyEscalation(t *testing.T) {
	fn, bus := victimToolFunc(t, "request_emergency_escalation")

	result, err := fn(context.Background(), map[string]any{
		"escalation_reason":   "Victim stopped breathing",
		"critical_details":    map[string]any{"duration": "2 minutes"},
		"recommended_actions": []string{"dispatch ALS unit"},
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, true, confirmation["success"])
	assert.Equal(t, true, confirmation["escalation_sent"])
	assert.Equal(t, "CRITICAL", confirmation["priority"])
	assert.Equal(t, "Emergency escalation sent: Victim stopped breathing...", confirmation["message"])

	critical := bus.CriticalMessages()
	assert.Len(t, critical, 1)
	assert.Equal(t, RoleOperator, critical[0].Recipient)
	assert.Equal(t, []string{"dispatch ALS unit"}, critical[0].Content["recommended_actions"])
}

func TestRequestEmergencyEscalationDefaults(t *testing.T) {
	fn, bus := victimToolFunc(t, "request_emergency_escalation")

	_, err := fn(context.Background(), map[string]any{
		"escalation_reason": "Severe bleeding",
	})
	assert.NoError(t, err)

	msg := bus.History(1)[0]
	assert.Equal(t, map[string]any{"reason": "Severe bleeding"}, msg.Content["critical_details"])
	assert.Equal(t, []string{"immediate emergency response required"}, msg.Content["recommended_actions"])
}

func TestRequestEmergencyEscalationActionAliases(t *testing.T) {
	aliases := []string{
		"recommendeed_actions",
		"reccomended_actions",
		"recomended_actions",
		"actions",
		"suggested_actions",
	}

	for _, alias := range aliases {
		fn, bus := victimToolFunc(t, "request_emergency_escalation")
		_, err := fn(context.Background(), map[string]any{
			"escalation_reason": "Cardiac arrest",
			alias:               "send ambulance",
		})
		assert.NoError(t, err, alias)

		msg := bus.History(1)[0]
		assert.Equal(t, []string{"send ambulance"}, msg.Content["recommended_actions"], alias)
	}
}

func TestRequestEmergencyEscalationMissingReason(t *testing.T) {
	fn, bus := victimToolFunc(t, "request_emergency_escalation")

	result, err := fn(context.Background(), map[string]any{})
	assert.NoError(t, err)

	failure := result.(map[string]any)
	assert.Equal(t, false, failure["success"])
	assert.Contains(t, failure["error"], "Failed to send escalation:")
	assert.Equal(t, "Emergency escalation failed - please try again", failure["message"])
	assert.Empty(t, bus.History(0))
}

// -------------------- Victim Status Tests --------------------

func TestSendVictimStatusUpdate(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_victim_status_update")

	result, err := fn(context.Background(), map[string]any{
		"status":  "Victim stable, awaiting responders",
		"details": "breathing normally",
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, true, confirmation["success"])
	assert.Equal(t, true, confirmation["status_sent"])
	assert.Equal(t, "Status update sent: Victim stable, awaiting responders...", confirmation["message"])

	msg := bus.History(1)[0]
	assert.Equal(t, RoleVictimAssistant, msg.Sender)
	assert.Equal(t, RoleOperator, msg.Recipient)
	assert.Equal(t, map[string]any{"description": "breathing normally"}, msg.Content["details"])
}

func TestSendVictimStatusUpdateMissingStatus(t *testing.T) {
	fn, bus := victimToolFunc(t, "send_victim_status_update")

	result, err := fn(context.Background(), map[string]any{"details": "x"})
	assert.NoError(t, err)

	failure := result.(map[string]any)
	assert.Equal(t, false, failure["success"])
	assert.Equal(t, "Status update failed - please try again", failure["message"])
	assert.Empty(t, bus.History(0))
}

// -------------------- Dispatch Update Tests --------------------

func TestSendDispatchUpdate(t *testing.T) {
	fn, bus := operatorToolFunc(t, "send_dispatch_update")

	result, err := fn(context.Background(), map[string]any{
		"responder_eta":           4,
		"responder_types":         []string{"medical", "fire"},
		"instructions_for_victim": "Unlock the front door if safe",
		"dispatch_status":         "en_route",
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, true, confirmation["success"])
	assert.Equal(t, true, confirmation["dispatch_update_sent"])
	assert.Equal(t, 4, confirmation["eta"])
	assert.Equal(t, "en_route", confirmation["status"])
	assert.Equal(t, "Dispatch update sent: en_route, ETA 4 min", confirmation["message"])

	msg := bus.History(1)[0]
	assert.Equal(t, RoleOperator, msg.Sender)
	assert.Equal(t, RoleVictimAssistant, msg.Recipient)
	assert.Equal(t, 4, msg.Content["responder_eta"])
	assert.Equal(t, "Unlock the front door if safe", msg.Content["instructions_for_victim"])
}

func TestSendDispatchUpdateETACoercions(t *testing.T) {
	tests := []struct {
		name    string
		eta     any
		want    any
		display string
	}{
		{"numeric string", "5", 5, "5"},
		{"float", 4.0, 4, "4"},
		{"vague string", "soon", nil, "unknown"},
		{"missing", nil, nil, "unknown"},
	}

	for _, tt := range tests {
		fn, bus := operatorToolFunc(t, "send_dispatch_update")
		args := map[string]any{"dispatch_status": "dispatched"}
		if tt.eta != nil {
			args["responder_eta"] = tt.eta
		}

		result, err := fn(context.Background(), args)
		assert.NoError(t, err, tt.name)

		confirmation := result.(map[string]any)
		assert.Equal(t, tt.want, confirmation["eta"], tt.name)
		assert.Equal(t, "Dispatch update sent: dispatched, ETA "+tt.display+" min", confirmation["message"], tt.name)

		if tt.want == nil {
			assert.Nil(t, bus.History(1)[0].Content["responder_eta"], tt.name)
		}
	}
}

func TestSendDispatchUpdateDefaults(t *testing.T) {
	fn, bus := operatorToolFunc(t, "send_dispatch_update")

	result, err := fn(context.Background(), map[string]any{})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, "dispatched", confirmation["status"])

	msg := bus.History(1)[0]
	assert.Equal(t, "dispatched", msg.Content["dispatch_status"])
	assert.Equal(t, []string{}, msg.Content["responder_types"])
}

// -------------------- Operator Status Tests --------------------

func TestSendOperatorStatus(t *testing.T) {
	fn, bus := operatorToolFunc(t, "send_operator_status")

	result, err := fn(context.Background(), map[string]any{
		"status": "All units briefed",
	})
	assert.NoError(t, err)

	confirmation := result.(map[string]any)
	assert.Equal(t, true, confirmation["success"])
	assert.Equal(t, true, confirmation["operator_status_sent"])
	assert.Equal(t, "Operator status sent: All units briefed...", confirmation["message"])

	msg := bus.History(1)[0]
	assert.Equal(t, RoleOperator, msg.Sender)
	assert.Equal(t, RoleVictimAssistant, msg.Recipient)
	assert.Equal(t, PriorityMedium, msg.Priority)
}

func TestSendOperatorStatusMissingStatus(t *testing.T) {
	fn, bus := operatorToolFunc(t, "send_operator_status")

	result, err := fn(context.Background(), map[string]any{})
	assert.NoError(t, err)

	failure := result.(map[string]any)
	assert.Equal(t, false, failure["success"])
	assert.True(t, strings.HasPrefix(failure["error"].(string), "Failed to send status:"))
	assert.Equal(t, "Operator status update failed - please try again", failure["message"])
	assert.Empty(t, bus.History(0))
}
