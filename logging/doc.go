// Package logging provides a tiny abstraction over slog so the rest of the
// module depends on a minimal interface (Logger) while users can plug any
// structured logger. It also offers ConversationLogger, a contextual logger
// with helpers for the recurring events of a conversation run (model calls,
// tool calls, delegations).
package logging
