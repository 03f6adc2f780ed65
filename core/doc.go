// Package core provides the foundational conversation types shared across the
// coordination core. It defines:
//
//   - Message (a single role-attributed conversation turn)
//   - AgentResponse / ToolCall (the structured outcome of a chat turn)
//   - NewID (unique identifier generation)
//
// The package intentionally keeps implementation concerns (model providers,
// tool execution, message routing) out of scope so higher layers can depend
// on it without import cycles.
package core
