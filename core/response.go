package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
)

// Action is the tagged variant selecting what the conversation loop does
// with a model response. Extending the protocol means adding a constant here
// and a case to every exhaustive switch; there is no ad hoc type inspection.
type Action string

const (
	// ActionFinalAnswer terminates the conversation with Content as the answer.
	ActionFinalAnswer Action = "final_answer"
	// ActionCallTool invokes the registered tool ToolName with ToolArgs.
	ActionCallTool Action = "call_tool"
	// ActionDelegate runs DelegatedTask through the declared child TargetAgent.
	ActionDelegate Action = "delegate"
)

// StructuredResponse is the schema-validated output of one model call. Every
// response declares exactly one action; only the fields required by that
// action may be populated. Validation happens at the boundary, before any
// dispatch side effect.
type StructuredResponse struct {
	// Reasoning is a short explanation of the chosen action. It is logged
	// for observability and never dispatched.
	Reasoning string `json:"reasoning" jsonschema:"description=Short explanation of why this action was chosen"`
	Action    Action `json:"action" jsonschema:"enum=final_answer,enum=call_tool,enum=delegate,description=The single action to perform this turn"`
	// Content carries the final answer text. Required for final_answer.
	Content string `json:"content,omitempty" jsonschema:"description=Final answer text. Required when action is final_answer"`
	// ToolName and ToolArgs select and parameterize a registered tool.
	// Required for call_tool.
	ToolName string         `json:"tool_name,omitempty" jsonschema:"description=Name of the registered tool to invoke. Required when action is call_tool"`
	ToolArgs map[string]any `json:"tool_args,omitempty" jsonschema:"description=Named arguments for the tool. Required when action is call_tool"`
	// TargetAgent and DelegatedTask route a sub-task to a declared child.
	// Required for delegate.
	TargetAgent   string `json:"target_agent,omitempty" jsonschema:"description=Name of the declared child agent. Required when action is delegate"`
	DelegatedTask string `json:"delegated_task,omitempty" jsonschema:"description=Task to hand to the child agent. Required when action is delegate"`
}

// Validate checks the action-conditional field invariant: the fields the
// declared action requires are present and non-empty, and fields belonging
// to other actions are absent. Returns a *SchemaViolationError on failure.
func (r *StructuredResponse) Validate() error {
	switch r.Action {
	case ActionFinalAnswer:
		if strings.TrimSpace(r.Content) == "" {
			return &SchemaViolationError{Detail: "final_answer requires a non-empty 'content'"}
		}
		if r.ToolName != "" || len(r.ToolArgs) > 0 || r.TargetAgent != "" || r.DelegatedTask != "" {
			return &SchemaViolationError{Detail: "final_answer must not carry tool or delegation fields"}
		}
	case ActionCallTool:
		if strings.TrimSpace(r.ToolName) == "" {
			return &SchemaViolationError{Detail: "call_tool requires a non-empty 'tool_name'"}
		}
		if r.TargetAgent != "" || r.DelegatedTask != "" {
			return &SchemaViolationError{Detail: "call_tool must not carry delegation fields"}
		}
	case ActionDelegate:
		if strings.TrimSpace(r.TargetAgent) == "" {
			return &SchemaViolationError{Detail: "delegate requires a non-empty 'target_agent'"}
		}
		if strings.TrimSpace(r.DelegatedTask) == "" {
			return &SchemaViolationError{Detail: "delegate requires a non-empty 'delegated_task'"}
		}
		if r.ToolName != "" || len(r.ToolArgs) > 0 {
			return &SchemaViolationError{Detail: "delegate must not carry tool fields"}
		}
	default:
		return &SchemaViolationError{Detail: fmt.Sprintf("unknown action %q", r.Action)}
	}
	return nil
}

// ParseStructuredResponse parses and validates raw model output. Unknown
// fields are rejected, matching the schema handed to the provider. Any
// failure is reported as a *SchemaViolationError carrying the raw output.
func ParseStructuredResponse(data []byte) (*StructuredResponse, error) {
	var resp StructuredResponse
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil {
		return nil, &SchemaViolationError{
			Detail: fmt.Sprintf("malformed response: %v", err),
			Raw:    string(data),
		}
	}
	if err := resp.Validate(); err != nil {
		if sv, ok := err.(*SchemaViolationError); ok {
			sv.Raw = string(data)
		}
		return nil, err
	}
	return &resp, nil
}

// ResponseSchemaName is the identifier providers attach to the schema.
const ResponseSchemaName = "agent_response"

var (
	schemaOnce sync.Once
	schemaMap  map[string]any
)

// ResponseSchema returns the JSON schema of StructuredResponse in the
// generic map form model adapters pass to their providers. The map is built
// once from the struct definition; callers must treat it as read-only.
func ResponseSchema() map[string]any {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			DoNotReference:            true,
			AllowAdditionalProperties: false,
		}
		schema := reflector.Reflect(&StructuredResponse{})
		raw, err := json.Marshal(schema)
		if err != nil {
			panic(fmt.Sprintf("marshal response schema: %v", err))
		}
		m := map[string]any{}
		if err := json.Unmarshal(raw, &m); err != nil {
			panic(fmt.Sprintf("unmarshal response schema: %v", err))
		}
		delete(m, "$schema")
		delete(m, "$id")
		schemaMap = m
	})
	return schemaMap
}
