// Package agent implements the conversational reasoning core that drives
// emergency-response agents. The package focuses on three concerns:
//
//  1. Conversation management (history, rollback on failure, defensive copies)
//  2. The bounded reasoning loop: repeated model calls with at-most-once
//     tool execution per tool, results fed back as system turns, then a
//     single finalization call
//  3. Ready-made presets (NewOperator, NewVictimAssistant) carrying the
//     domain prompts, trigger keywords and answer post-processing
//
// Design principles:
//   - No hidden global state – providers, tool runners and loggers are
//     injected through New
//   - Containment – Chat never returns an error; failures roll the turn back
//     and surface through AgentResponse metadata
//   - Tolerant parsing – strict JSON first, then a line-oriented heuristic,
//     so a sloppy model degrades the answer rather than the process
//
// Model specifics live in the model package and tool dispatch in the tool
// package; this package only consumes their interfaces.
package agent
