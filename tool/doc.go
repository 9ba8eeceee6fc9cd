// Package tool implements the tool-calling subsystem: structured
// capabilities an agent can invoke with schema-validated arguments,
// consistent error handling, and natural-language descriptions that let the
// model choose correctly. A per-agent Registry maps tool names to
// implementations; the conversation loop resolves call_tool actions against
// it.
package tool
