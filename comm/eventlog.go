package comm

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/one-minute-gemma/one-minute-agent/logging"
)

// LogLevel grades event log entries.
type LogLevel string

const (
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

// LogEntry is one audit record derived from coordination activity.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// FormatForDisplay renders the entry as "HH:MM:SS PM LEVEL message" for
// console monitors.
func (e LogEntry) FormatForDisplay() string {
	return fmt.Sprintf("%s %s %s", e.Timestamp.Format("15:04:05 PM"), e.Level, e.Message)
}

// EventLogOptions holds configuration overrides passed to NewEventLog.
type EventLogOptions struct {
	// MaxEntries bounds the number of retained entries.
	MaxEntries int
	// Logger receives a structured mirror of appended entries.
	Logger logging.Logger
}

// EventLog is a bounded in-memory audit log for coordination activity.
// When capacity is exceeded the oldest entry is evicted. All methods are
// safe for concurrent use.
type EventLog struct {
	mu         sync.RWMutex
	entries    []LogEntry
	maxEntries int
	logger     logging.Logger
}

// NewEventLog constructs an EventLog retaining up to 1000 entries by default.
func NewEventLog(optFns ...func(o *EventLogOptions)) *EventLog {
	opts := EventLogOptions{
		MaxEntries: 1000,
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 1000
	}

	return &EventLog{
		maxEntries: opts.MaxEntries,
		logger:     opts.Logger,
	}
}

// LogMessage derives an audit entry from a published message: severity from
// the message priority, source from the sender role and a type-specific
// one-line summary.
func (l *EventLog) LogMessage(msg Message) {
	l.append(LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     levelForPriority(msg.Priority),
		Source:    strings.ToUpper(string(msg.Sender)),
		Message:   summarizeMessage(msg),
		Metadata: map[string]any{
			"message_id":   msg.ID,
			"message_type": string(msg.Type),
			"priority":     int(msg.Priority),
			"recipient":    string(msg.Recipient),
		},
	})
}

// LogEvent records a custom coordination event.
func (l *EventLog) LogEvent(level LogLevel, source, message string, metadata map[string]any) {
	l.append(LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Source:    source,
		Message:   message,
		Metadata:  metadata,
	})
}

func (l *EventLog) append(entry LogEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[1:]
	}
	l.mu.Unlock()

	l.logger.Debug("eventlog.append", "level", string(entry.Level), "source", entry.Source, "message", entry.Message)
}

// Entries returns a copy of retained entries, optionally filtered by level
// before the limit is applied. A positive limit keeps only the most recent
// entries; an empty level keeps all levels.
func (l *EventLog) Entries(limit int, level LogLevel) []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	filtered := l.entries
	if level != "" {
		filtered = make([]LogEntry, 0, len(l.entries))
		for _, e := range l.entries {
			if e.Level == level {
				filtered = append(filtered, e)
			}
		}
	}

	if limit > 0 && limit < len(filtered) {
		filtered = filtered[len(filtered)-limit:]
	}

	out := make([]LogEntry, len(filtered))
	copy(out, filtered)

	return out
}

// FormattedEntries renders the most recent entries for display.
func (l *EventLog) FormattedEntries(limit int) []string {
	entries := l.Entries(limit, "")

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.FormatForDisplay()
	}

	return out
}

// Clear drops all retained entries.
func (l *EventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// levelForPriority maps message priorities to audit severities.
func levelForPriority(p Priority) LogLevel {
	switch p {
	case PriorityCritical:
		return LogLevelCritical
	case PriorityHigh:
		return LogLevelWarning
	case PriorityMedium:
		return LogLevelInfo
	case PriorityLow:
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// summarizeMessage produces the one-line audit summary for a message.
func summarizeMessage(msg Message) string {
	switch msg.Type {
	case MessageTypeSituationUpdate:
		return fmt.Sprintf("Situation update: %s...", truncate(contentString(msg.Content, "situation_description", "Unknown situation"), 50))
	case MessageTypeDispatchUpdate:
		return fmt.Sprintf("Dispatch update: %s, ETA %s min",
			contentString(msg.Content, "dispatch_status", "Unknown status"),
			contentString(msg.Content, "responder_eta", "Unknown ETA"),
		)
	case MessageTypeStatusUpdate:
		return fmt.Sprintf("Status: %s", contentString(msg.Content, "status", "Status update"))
	case MessageTypeEmergencyEscalation:
		return fmt.Sprintf("ESCALATION: %s", contentString(msg.Content, "escalation_reason", "Emergency escalation"))
	default:
		return fmt.Sprintf("%s: %s...", msg.Type, truncate(fmt.Sprintf("%v", msg.Content), 50))
	}
}

// contentString renders a content value for display, treating nil the same
// as a missing key.
func contentString(content map[string]any, key, fallback string) string {
	if v, ok := content[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return fallback
}

// truncate caps a string at n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
