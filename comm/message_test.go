package comm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// -------------------- Priority Tests --------------------

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "critical", PriorityCritical.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "medium", PriorityMedium.String())
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "unknown", Priority(9).String())
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityCritical, ParsePriority("CRITICAL"))
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityMedium, ParsePriority(" Medium "))
	assert.Equal(t, PriorityLow, ParsePriority("low"))
	// Unknown names fall back to high
	assert.Equal(t, PriorityHigh, ParsePriority("urgent"))
	assert.Equal(t, PriorityHigh, ParsePriority(""))
}

// -------------------- Constructor Tests --------------------

func TestNewMessageDefaults(t *testing.T) {
	msg := NewMessage(RoleSystem, RoleOperator, MessageTypeAcknowledgment, PriorityLow, nil)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
	assert.NotNil(t, msg.Content)
	assert.NotNil(t, msg.Metadata)
	assert.False(t, msg.RequiresResponse)
	assert.Zero(t, msg.ResponseTimeout)
}

func TestNewSituationUpdate(t *testing.T) {
	msg := NewSituationUpdate(
		"Person collapsed in kitchen",
		map[string]any{"conscious": false},
		[]string{"smoke"},
		[]string{"ambulance"},
		PriorityCritical,
	)

	assert.Equal(t, RoleVictimAssistant, msg.Sender)
	assert.Equal(t, RoleOperator, msg.Recipient)
	assert.Equal(t, MessageTypeSituationUpdate, msg.Type)
	assert.Equal(t, PriorityCritical, msg.Priority)
	assert.True(t, msg.RequiresResponse)
	assert.Equal(t, 60*time.Second, msg.ResponseTimeout)
	assert.Equal(t, "Person collapsed in kitchen", msg.Content["situation_description"])
	assert.Equal(t, map[string]any{"conscious": false}, msg.Content["victim_status"])
}

func TestNewSituationUpdateNilCollections(t *testing.T) {
	msg := NewSituationUpdate("Fire", nil, nil, nil, PriorityHigh)
	assert.Equal(t, map[string]any{}, msg.Content["victim_status"])
	assert.Equal(t, []string{}, msg.Content["environmental_hazards"])
	assert.Equal(t, []string{}, msg.Content["immediate_needs"])
}

func TestNewDispatchUpdate(t *testing.T) {
	eta := 4
	msg := NewDispatchUpdate(&eta, []string{"medical", "fire"}, "Stay on the line", "en_route")

	assert.Equal(t, RoleOperator, msg.Sender)
	assert.Equal(t, RoleVictimAssistant, msg.Recipient)
	assert.Equal(t, MessageTypeDispatchUpdate, msg.Type)
	assert.Equal(t, PriorityHigh, msg.Priority)
	assert.False(t, msg.RequiresResponse)
	assert.Equal(t, 4, msg.Content["responder_eta"])
	assert.Equal(t, "en_route", msg.Content["dispatch_status"])
}

func TestNewDispatchUpdateUnknownETA(t *testing.T) {
	msg := NewDispatchUpdate(nil, nil, "", "dispatched")
	assert.Nil(t, msg.Content["responder_eta"])
	assert.Equal(t, []string{}, msg.Content["responder_types"])
}

func TestNewStatusUpdate(t *testing.T) {
	msg := NewStatusUpdate(RoleVictimAssistant, RoleOperator, "stable", nil)
	assert.Equal(t, RoleVictimAssistant, msg.Sender)
	assert.Equal(t, RoleOperator, msg.Recipient)
	assert.Equal(t, MessageTypeStatusUpdate, msg.Type)
	assert.Equal(t, PriorityMedium, msg.Priority)
	assert.Equal(t, "stable", msg.Content["status"])
	assert.Equal(t, map[string]any{}, msg.Content["details"])
}

func TestNewEmergencyEscalationRouting(t *testing.T) {
	fromVictim := NewEmergencyEscalation(RoleVictimAssistant, "Stopped breathing", nil, nil)
	assert.Equal(t, RoleOperator, fromVictim.Recipient)
	assert.Equal(t, PriorityCritical, fromVictim.Priority)
	assert.True(t, fromVictim.RequiresResponse)
	assert.Equal(t, 30*time.Second, fromVictim.ResponseTimeout)

	fromOperator := NewEmergencyEscalation(RoleOperator, "Scene unsafe", nil, nil)
	assert.Equal(t, RoleVictimAssistant, fromOperator.Recipient)
}

func TestNewCoordinationRequest(t *testing.T) {
	msg := NewCoordinationRequest(RoleOperator, "confirm victim location", nil)
	assert.Equal(t, RoleVictimAssistant, msg.Recipient)
	assert.Equal(t, MessageTypeCoordinationRequest, msg.Type)
	assert.Equal(t, PriorityHigh, msg.Priority)
	assert.True(t, msg.RequiresResponse)
	assert.Equal(t, "confirm victim location", msg.Content["request"])
}

func TestNewAcknowledgment(t *testing.T) {
	msg := NewAcknowledgment(RoleOperator, RoleVictimAssistant, "msg-123")
	assert.Equal(t, MessageTypeAcknowledgment, msg.Type)
	assert.Equal(t, PriorityLow, msg.Priority)
	assert.False(t, msg.RequiresResponse)
	assert.Equal(t, "msg-123", msg.Content["acknowledged_id"])
}

// -------------------- JSON Tests --------------------

func TestMessageJSONRoundTrip(t *testing.T) {
	msg := NewSituationUpdate("Chest pain", map[string]any{"conscious": true}, []string{"none"}, []string{"medical"}, PriorityHigh)

	data, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"response_timeout_seconds":60`)
	assert.Contains(t, string(data), `"priority":2`)
	assert.Contains(t, string(data), `"message_type":"situation_update"`)

	var decoded Message
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.ID, decoded.ID)
	assert.Equal(t, msg.Type, decoded.Type)
	assert.Equal(t, msg.Priority, decoded.Priority)
	assert.Equal(t, 60*time.Second, decoded.ResponseTimeout)
	assert.Equal(t, "Chest pain", decoded.Content["situation_description"])
}

func TestMessageJSONWithoutTimeout(t *testing.T) {
	msg := NewDispatchUpdate(nil, nil, "", "dispatched")

	data, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"response_timeout_seconds":null`)

	var decoded Message
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Zero(t, decoded.ResponseTimeout)
}
