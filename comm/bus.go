package comm

import (
	"fmt"
	"sync"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// Handler consumes messages delivered by the bus.
type Handler func(msg Message)

// BusOptions holds configuration overrides passed to NewBus and
// NewEmergencyBus.
type BusOptions struct {
	// Logger receives publish and delivery diagnostics.
	Logger logging.Logger
}

// Bus is an in-process publish/subscribe hub routing messages between roles.
// It retains every published message in chronological order. Handlers run
// synchronously on the publisher's goroutine while the bus lock is held, so
// one message's delivery can never interleave with another's; the price is
// that handlers must not publish back into the bus.
//
// A panicking handler is recovered and logged so it cannot poison delivery
// to the remaining handlers.
type Bus struct {
	mu          sync.Mutex
	history     []Message
	subscribers map[Role][]Handler
	logger      logging.Logger
}

// NewBus constructs an empty Bus.
func NewBus(optFns ...func(o *BusOptions)) *Bus {
	opts := BusOptions{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Bus{
		subscribers: make(map[Role][]Handler),
		logger:      opts.Logger,
	}
}

// Subscribe registers a handler for messages addressed to role. Multiple
// handlers per role are permitted and all are invoked in registration order.
func (b *Bus) Subscribe(role Role, handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[role] = append(b.subscribers[role], handler)
	b.logger.Debug("bus.subscribe", "role", string(role))
}

// Publish appends the message to the history and fans it out to every
// handler subscribed to the recipient role. Delivery is synchronous:
// Publish returns only after all handlers have run. Handler panics are
// logged and skipped, never propagated.
func (b *Bus) Publish(msg Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = append(b.history, msg)
	b.logPublish(msg)
	b.fanOut(msg)

	return true
}

// logPublish and fanOut run with the bus lock held.
func (b *Bus) logPublish(msg Message) {
	b.logger.Debug("bus.publish",
		"message_id", msg.ID,
		"type", string(msg.Type),
		"priority", msg.Priority.String(),
		"sender", string(msg.Sender),
		"recipient", string(msg.Recipient),
	)
}

func (b *Bus) fanOut(msg Message) {
	for _, handler := range b.subscribers[msg.Recipient] {
		b.dispatch(handler, msg, "subscriber")
	}
}

// dispatch invokes one handler, converting a panic into a log entry.
func (b *Bus) dispatch(handler Handler, msg Message, kind string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("bus.handler.panic",
				"kind", kind,
				"message_id", msg.ID,
				"recipient", string(msg.Recipient),
				"panic", fmt.Sprintf("%v", r),
			)
		}
	}()

	handler(msg)
}

// History returns a copy of the chronological message history. A positive
// limit returns only the most recent entries.
func (b *Bus) History(limit int) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	msgs := b.history
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]Message, len(msgs))
	copy(out, msgs)

	return out
}

// ClearHistory drops all retained messages. Priority buckets kept by an
// EmergencyBus are unaffected.
func (b *Bus) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = nil
	b.logger.Debug("bus.history.cleared")
}

// EmergencyBus extends Bus with per-priority buckets and event listeners
// that observe every published message regardless of recipient. The
// chronological history remains the source of truth; buckets are a
// secondary view and never change delivery order.
type EmergencyBus struct {
	*Bus
	buckets   map[Priority][]Message
	listeners []Handler
}

// NewEmergencyBus constructs an empty EmergencyBus.
func NewEmergencyBus(optFns ...func(o *BusOptions)) *EmergencyBus {
	return &EmergencyBus{
		Bus:     NewBus(optFns...),
		buckets: make(map[Priority][]Message),
	}
}

// AddEventListener registers a handler invoked for every published message
// before the recipient's subscribers run. Used to drive audit logging.
func (b *EmergencyBus) AddEventListener(handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, handler)
}

// Publish records the message in its priority bucket and the chronological
// history, then notifies event listeners followed by the recipient's
// subscribers. Handler panics are logged and skipped.
func (b *EmergencyBus) Publish(msg Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buckets[msg.Priority] = append(b.buckets[msg.Priority], msg)
	b.history = append(b.history, msg)
	b.logPublish(msg)

	for _, listener := range b.listeners {
		b.dispatch(listener, msg, "listener")
	}
	b.fanOut(msg)

	return true
}

// PriorityMessages returns a copy of the bucket for the given priority.
func (b *EmergencyBus) PriorityMessages(p Priority) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	msgs := b.buckets[p]
	out := make([]Message, len(msgs))
	copy(out, msgs)

	return out
}

// CriticalMessages returns a copy of the critical-priority bucket.
func (b *EmergencyBus) CriticalMessages() []Message {
	return b.PriorityMessages(PriorityCritical)
}
