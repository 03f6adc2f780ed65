package model

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/one-minute-gemma/one-minute-agent/core"
)

// Canned demo completions cycled by the Mock when nothing is scripted. The
// victim list is served to victim-facing agents, the operator list to
// everything else.
var (
	mockVictimResponses = []string{
		"I understand you're in an emergency situation. Help is on the way. Can you tell me if you're in a safe location right now?",
		"Thank you for that information. Emergency responders are approximately 3-4 minutes away. Please stay with me.",
		"You're doing great. Keep talking to me while we wait for help to arrive.",
		"I've updated the emergency team with your information. They should be there very soon.",
		"Please stay calm. Can you tell me if anyone else is with you right now?",
		"That's very helpful information. I'm relaying this to the responders right now.",
		"You're being very brave. Help will be there in just a few minutes.",
	}

	mockOperatorResponses = []string{
		"Unit 23 dispatched to location. ETA 4 minutes.",
		"Fire department and paramedics en route. Emergency confirmed at location.",
		"Additional units being dispatched. Maintaining communication with victim.",
		"Responders are 2 minutes out. Preparing for arrival.",
		"Emergency team briefed on situation. Standing by for updates.",
		"All units converging on location. ETA reduced to 90 seconds.",
	}
)

// mockEnvelope is the reasoning-format payload emitted by canned replies.
type mockEnvelope struct {
	Thought     string         `json:"thought"`
	Action      string         `json:"action"`
	ActionInput map[string]any `json:"actionInput"`
	Response    string         `json:"response"`
}

// MockCall records a single Chat invocation for test assertions.
type MockCall struct {
	Messages     []core.Message
	SystemPrompt string
}

type mockReply struct {
	text string
	err  error
}

// MockOptions configure the Mock provider.
type MockOptions struct {
	// ModelName is reported via Info.
	ModelName string
}

// Mock is a deterministic in-memory Provider for tests and offline demos.
// Replies queued via Enqueue or EnqueueError are returned first, in order.
// Once the queue is drained, Chat falls back to canned emergency responses
// wrapped in the JSON reasoning envelope, cycling through the list on each
// call. The fallback serves the victim-facing list when the system prompt
// mentions "victim" or "assistant", the operator-facing list otherwise.
type Mock struct {
	mu        sync.Mutex
	name      string
	queue     []mockReply
	calls     []MockCall
	callCount int
}

var _ Provider = (*Mock)(nil)

// NewMock constructs a Mock provider.
func NewMock(optFns ...func(o *MockOptions)) *Mock {
	opts := MockOptions{
		ModelName: "mock-demo",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Mock{name: opts.ModelName}
}

// Enqueue appends scripted replies returned by subsequent Chat calls.
func (m *Mock) Enqueue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range replies {
		m.queue = append(m.queue, mockReply{text: r})
	}
}

// EnqueueError appends scripted failures returned by subsequent Chat calls.
func (m *Mock) EnqueueError(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, err := range errs {
		m.queue = append(m.queue, mockReply{err: err})
	}
}

// Chat implements Provider. Every call is recorded, scripted or not.
func (m *Mock) Chat(ctx context.Context, messages []core.Message, systemPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.calls = append(m.calls, MockCall{
		Messages:     append([]core.Message(nil), messages...),
		SystemPrompt: systemPrompt,
	})

	if len(m.queue) > 0 {
		reply := m.queue[0]
		m.queue = m.queue[1:]

		if reply.err != nil {
			return "", reply.err
		}
		return reply.text, nil
	}

	return m.canned(systemPrompt)
}

// canned returns the next cycling demo completion. Callers hold m.mu.
func (m *Mock) canned(systemPrompt string) (string, error) {
	responses := mockOperatorResponses

	sys := strings.ToLower(systemPrompt)
	if strings.Contains(sys, "victim") || strings.Contains(sys, "assistant") {
		responses = mockVictimResponses
	}

	payload, err := json.Marshal(mockEnvelope{
		Thought:     "This is an emergency response situation requiring immediate attention.",
		Action:      "None",
		ActionInput: map[string]any{},
		Response:    responses[(m.callCount-1)%len(responses)],
	})
	if err != nil {
		return "", err
	}

	return string(payload), nil
}

// Calls returns a copy of every recorded Chat invocation.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]MockCall(nil), m.calls...)
}

// CallCount returns the number of Chat invocations since the last Reset.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.callCount
}

// Reset clears the scripted queue, recorded calls and the cycle position.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queue = nil
	m.calls = nil
	m.callCount = 0
}

// Info implements Provider.
func (m *Mock) Info() Info {
	return Info{Name: m.name, Provider: "mock"}
}
