package comm

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/one-minute-gemma/one-minute-agent/core"
)

// Role identifies a participant on the coordination bus.
type Role string

const (
	// RoleVictimAssistant is the agent helping the person in the emergency.
	RoleVictimAssistant Role = "victim_assistant"
	// RoleOperator is the agent speaking with the 911 operator.
	RoleOperator Role = "operator"
	// RoleSystem is the coordination layer itself.
	RoleSystem Role = "system"
)

// MessageType classifies coordination messages.
type MessageType string

const (
	MessageTypeSituationUpdate     MessageType = "situation_update"
	MessageTypeDispatchUpdate      MessageType = "dispatch_update"
	MessageTypeStatusUpdate        MessageType = "status_update"
	MessageTypeEmergencyEscalation MessageType = "emergency_escalation"
	MessageTypeCoordinationRequest MessageType = "coordination_request"
	MessageTypeAcknowledgment      MessageType = "acknowledgment"
)

// Priority orders messages by urgency. Lower values are more urgent.
type Priority int

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityMedium   Priority = 3
	PriorityLow      Priority = 4
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParsePriority maps a case-insensitive priority name to a Priority.
// Unrecognized names fall back to PriorityHigh.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// Message is a structured, prioritized message exchanged between agent
// roles. Treat a message as immutable once published: the bus retains it in
// its history and hands the same value to every subscriber.
type Message struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Sender    Role           `json:"sender"`
	Recipient Role           `json:"recipient"`
	Type      MessageType    `json:"message_type"`
	Priority  Priority       `json:"priority"`
	Content   map[string]any `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	// RequiresResponse asks the recipient to answer within ResponseTimeout.
	RequiresResponse bool `json:"requires_response"`
	// ResponseTimeout is advisory only; the bus enforces no timer.
	ResponseTimeout time.Duration `json:"-"`
}

// messageJSON mirrors Message with the timeout expressed in whole seconds,
// the shape consumed by dashboards reading the feed.
type messageJSON struct {
	ID                     string         `json:"id"`
	Timestamp              time.Time      `json:"timestamp"`
	Sender                 Role           `json:"sender"`
	Recipient              Role           `json:"recipient"`
	Type                   MessageType    `json:"message_type"`
	Priority               Priority       `json:"priority"`
	Content                map[string]any `json:"content"`
	Metadata               map[string]any `json:"metadata"`
	RequiresResponse       bool           `json:"requires_response"`
	ResponseTimeoutSeconds *int64         `json:"response_timeout_seconds"`
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	aux := messageJSON{
		ID:               m.ID,
		Timestamp:        m.Timestamp,
		Sender:           m.Sender,
		Recipient:        m.Recipient,
		Type:             m.Type,
		Priority:         m.Priority,
		Content:          m.Content,
		Metadata:         m.Metadata,
		RequiresResponse: m.RequiresResponse,
	}
	if m.ResponseTimeout > 0 {
		secs := int64(m.ResponseTimeout / time.Second)
		aux.ResponseTimeoutSeconds = &secs
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(data []byte) error {
	var aux messageJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.ID = aux.ID
	m.Timestamp = aux.Timestamp
	m.Sender = aux.Sender
	m.Recipient = aux.Recipient
	m.Type = aux.Type
	m.Priority = aux.Priority
	m.Content = aux.Content
	m.Metadata = aux.Metadata
	m.RequiresResponse = aux.RequiresResponse
	if aux.ResponseTimeoutSeconds != nil {
		m.ResponseTimeout = time.Duration(*aux.ResponseTimeoutSeconds) * time.Second
	} else {
		m.ResponseTimeout = 0
	}

	return nil
}

// NewMessage constructs a bare message with a fresh ID and UTC timestamp.
func NewMessage(sender, recipient Role, msgType MessageType, priority Priority, content map[string]any) Message {
	if content == nil {
		content = map[string]any{}
	}
	return Message{
		ID:        core.NewID(),
		Timestamp: time.Now().UTC(),
		Sender:    sender,
		Recipient: recipient,
		Type:      msgType,
		Priority:  priority,
		Content:   content,
		Metadata:  map[string]any{},
	}
}

// NewSituationUpdate reports the victim's situation from the victim
// assistant to the operator. The recipient is expected to respond within
// the advisory timeout.
func NewSituationUpdate(description string, victimStatus map[string]any, hazards, needs []string, priority Priority) Message {
	if victimStatus == nil {
		victimStatus = map[string]any{}
	}
	if hazards == nil {
		hazards = []string{}
	}
	if needs == nil {
		needs = []string{}
	}

	msg := NewMessage(RoleVictimAssistant, RoleOperator, MessageTypeSituationUpdate, priority, map[string]any{
		"situation_description": description,
		"victim_status":         victimStatus,
		"environmental_hazards": hazards,
		"immediate_needs":       needs,
	})
	msg.RequiresResponse = true
	msg.ResponseTimeout = 60 * time.Second

	return msg
}

// NewDispatchUpdate informs the victim assistant about responder dispatch.
// A nil eta means the arrival time is not yet known.
func NewDispatchUpdate(eta *int, responderTypes []string, instructions, dispatchStatus string) Message {
	if responderTypes == nil {
		responderTypes = []string{}
	}

	var etaValue any
	if eta != nil {
		etaValue = *eta
	}

	return NewMessage(RoleOperator, RoleVictimAssistant, MessageTypeDispatchUpdate, PriorityHigh, map[string]any{
		"responder_eta":           etaValue,
		"responder_types":         responderTypes,
		"instructions_for_victim": instructions,
		"dispatch_status":         dispatchStatus,
	})
}

// NewStatusUpdate carries a general status between roles at medium priority.
func NewStatusUpdate(sender, recipient Role, status string, details map[string]any) Message {
	if details == nil {
		details = map[string]any{}
	}

	return NewMessage(sender, recipient, MessageTypeStatusUpdate, PriorityMedium, map[string]any{
		"status":  status,
		"details": details,
	})
}

// NewEmergencyEscalation flags a life-threatening change at critical
// priority. The recipient is the counterpart of the sender: escalations from
// the victim assistant go to the operator and vice versa.
func NewEmergencyEscalation(sender Role, reason string, criticalDetails map[string]any, recommendedActions []string) Message {
	if criticalDetails == nil {
		criticalDetails = map[string]any{}
	}
	if recommendedActions == nil {
		recommendedActions = []string{}
	}

	recipient := RoleVictimAssistant
	if sender == RoleVictimAssistant {
		recipient = RoleOperator
	}

	msg := NewMessage(sender, recipient, MessageTypeEmergencyEscalation, PriorityCritical, map[string]any{
		"escalation_reason":   reason,
		"critical_details":    criticalDetails,
		"recommended_actions": recommendedActions,
	})
	msg.RequiresResponse = true
	msg.ResponseTimeout = 30 * time.Second

	return msg
}

// NewCoordinationRequest asks the sender's counterpart to take a
// coordination action.
func NewCoordinationRequest(sender Role, request string, details map[string]any) Message {
	if details == nil {
		details = map[string]any{}
	}

	recipient := RoleVictimAssistant
	if sender == RoleVictimAssistant {
		recipient = RoleOperator
	}

	msg := NewMessage(sender, recipient, MessageTypeCoordinationRequest, PriorityHigh, map[string]any{
		"request": request,
		"details": details,
	})
	msg.RequiresResponse = true
	msg.ResponseTimeout = 60 * time.Second

	return msg
}

// NewAcknowledgment confirms receipt of an earlier message.
func NewAcknowledgment(sender, recipient Role, acknowledgedID string) Message {
	return NewMessage(sender, recipient, MessageTypeAcknowledgment, PriorityLow, map[string]any{
		"acknowledged_id": acknowledgedID,
	})
}
