package comm

import (
	"fmt"
	"sync"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// Agent is the minimal view of a registered conversational agent. The
// coordinator never invokes an agent directly; delivery means the message
// is visible on the recipient's next turn.
type Agent interface {
	Name() string
}

// CoordinatorOptions holds configuration overrides passed to NewCoordinator.
type CoordinatorOptions struct {
	// Logger receives registration and delivery diagnostics.
	Logger logging.Logger
}

// Coordinator binds logical roles to live agent instances and records
// delivery bookkeeping in the event log. It wires itself as a bus event
// listener so every published message is audited, and subscribes a delivery
// handler for each registered role.
type Coordinator struct {
	mu     sync.RWMutex
	bus    *EmergencyBus
	events *EventLog
	agents map[Role]Agent
	logger logging.Logger
}

// NewCoordinator wires a coordinator to the bus and event log.
func NewCoordinator(bus *EmergencyBus, events *EventLog, optFns ...func(o *CoordinatorOptions)) *Coordinator {
	opts := CoordinatorOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Coordinator{
		bus:    bus,
		events: events,
		agents: make(map[Role]Agent),
		logger: opts.Logger,
	}

	bus.AddEventListener(func(msg Message) { events.LogMessage(msg) })

	return c
}

// RegisterAgent binds an agent to a role and subscribes the delivery
// handler for that role. Re-registering a role replaces the binding without
// adding a duplicate subscription.
func (c *Coordinator) RegisterAgent(role Role, agent Agent) {
	c.mu.Lock()
	_, rebind := c.agents[role]
	c.agents[role] = agent
	c.mu.Unlock()

	c.events.LogEvent(LogLevelInfo, "COORDINATION", fmt.Sprintf("Agent registered: %s", role), map[string]any{
		"role":  string(role),
		"agent": agent.Name(),
	})
	c.logger.Info("coordinator.agent.registered", "role", string(role), "agent", agent.Name())

	if !rebind {
		c.bus.Subscribe(role, c.deliver)
	}
}

// Agent returns the agent bound to role.
func (c *Coordinator) Agent(role Role) (Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	agent, ok := c.agents[role]
	return agent, ok
}

// RegisteredAgents returns a copy of the current role bindings.
func (c *Coordinator) RegisteredAgents() map[Role]Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[Role]Agent, len(c.agents))
	for role, agent := range c.agents {
		out[role] = agent
	}

	return out
}

// SendMessage publishes a message on the coordination bus.
func (c *Coordinator) SendMessage(msg Message) bool {
	return c.bus.Publish(msg)
}

// MessageHistory returns the most recent bus messages.
func (c *Coordinator) MessageHistory(limit int) []Message {
	return c.bus.History(limit)
}

// LogEntries returns the most recent audit entries.
func (c *Coordinator) LogEntries(limit int, level LogLevel) []LogEntry {
	return c.events.Entries(limit, level)
}

// deliver records delivery bookkeeping for a message addressed to a
// registered role. It runs on the publisher's goroutine and must stay
// cheap: it only writes audit entries, it never invokes the recipient.
func (c *Coordinator) deliver(msg Message) {
	c.mu.RLock()
	_, ok := c.agents[msg.Recipient]
	c.mu.RUnlock()

	if !ok {
		c.events.LogEvent(LogLevelWarning, "COORDINATION", fmt.Sprintf("Recipient not found: %s", msg.Recipient), map[string]any{
			"message_id": msg.ID,
		})
		c.logger.Warn("coordinator.deliver.unbound", "message_id", msg.ID, "recipient", string(msg.Recipient))
		return
	}

	c.events.LogEvent(LogLevelInfo, "COORDINATION", fmt.Sprintf("Message delivered to %s", msg.Recipient), map[string]any{
		"message_id":   msg.ID,
		"message_type": string(msg.Type),
	})
	c.logger.Debug("coordinator.deliver", "message_id", msg.ID, "recipient", string(msg.Recipient))
}
