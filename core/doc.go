// Package core contains the shared data model of OrchestrAI: role-tagged
// conversation messages, the per-agent ConversationHistory, the
// StructuredResponse contract that every model call must satisfy, the error
// taxonomy of the conversation loop and the TurnLimiter that bounds it.
//
// The package has no dependency on agents, tools or model providers; those
// packages all build on top of it.
package core
