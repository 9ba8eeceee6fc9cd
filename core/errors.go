package core

import "fmt"

// SchemaViolationError reports model output that failed structural
// validation: malformed JSON, an unknown action, or fields inconsistent with
// the declared action. It is fatal to the conversation loop and is never
// retried automatically.
type SchemaViolationError struct {
	Agent  string `json:"agent,omitempty"` // Agent whose model produced the output
	Detail string `json:"detail"`          // What was wrong
	Raw    string `json:"raw,omitempty"`   // Offending model output for diagnosis
}

func (e *SchemaViolationError) Error() string {
	if e.Agent != "" {
		return fmt.Sprintf("schema violation (agent %q): %s", e.Agent, e.Detail)
	}
	return fmt.Sprintf("schema violation: %s", e.Detail)
}

// UnknownTargetError reports a response naming a tool that is not registered
// or a delegation target that is not a declared child. It receives the same
// fatal handling as a schema violation.
type UnknownTargetError struct {
	Agent string `json:"agent"` // Agent that received the response
	Kind  string `json:"kind"`  // "tool" or "agent"
	Name  string `json:"name"`  // The unresolved name
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown %s %q requested by agent %q", e.Kind, e.Name, e.Agent)
}

// TurnLimitError reports that a conversation exhausted its turn budget
// before producing a final answer. It is fatal to the loop.
type TurnLimitError struct {
	Agent    string `json:"agent"`
	MaxTurns int    `json:"max_turns"`
	Turns    int    `json:"turns"` // Turns consumed when the limit tripped
}

func (e *TurnLimitError) Error() string {
	return fmt.Sprintf("agent %q exceeded the turn limit of %d", e.Agent, e.MaxTurns)
}

// TransportError wraps a failure of the external model call itself (network,
// auth, provider error). It is surfaced to the caller without internal retry.
type TransportError struct {
	Agent string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model call failed for agent %q: %v", e.Agent, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
