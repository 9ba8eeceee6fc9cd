package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructuredResponseFinalAnswer(t *testing.T) {
	resp, err := ParseStructuredResponse([]byte(`{"reasoning":"done","action":"final_answer","content":"4"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionFinalAnswer, resp.Action)
	assert.Equal(t, "4", resp.Content)
	assert.Equal(t, "done", resp.Reasoning)
}

func TestParseStructuredResponseCallTool(t *testing.T) {
	raw := `{"reasoning":"needs math","action":"call_tool","tool_name":"calculator","tool_args":{"a":2,"b":2,"operator":"+"}}`
	resp, err := ParseStructuredResponse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, ActionCallTool, resp.Action)
	assert.Equal(t, "calculator", resp.ToolName)
	assert.Equal(t, "+", resp.ToolArgs["operator"])
}

func TestParseStructuredResponseDelegate(t *testing.T) {
	raw := `{"reasoning":"math is for the child","action":"delegate","target_agent":"mathematician","delegated_task":"compute 3*5"}`
	resp, err := ParseStructuredResponse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, ActionDelegate, resp.Action)
	assert.Equal(t, "mathematician", resp.TargetAgent)
	assert.Equal(t, "compute 3*5", resp.DelegatedTask)
}

func TestParseStructuredResponseRejectsMalformedJSON(t *testing.T) {
	_, err := ParseStructuredResponse([]byte(`not json`))
	var sv *SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, "not json", sv.Raw)
}

func TestParseStructuredResponseRejectsUnknownAction(t *testing.T) {
	_, err := ParseStructuredResponse([]byte(`{"reasoning":"r","action":"dance"}`))
	var sv *SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Contains(t, sv.Detail, "unknown action")
}

func TestParseStructuredResponseRejectsUnknownFields(t *testing.T) {
	_, err := ParseStructuredResponse([]byte(`{"reasoning":"r","action":"final_answer","content":"x","extra":true}`))
	var sv *SchemaViolationError
	assert.ErrorAs(t, err, &sv)
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		resp StructuredResponse
		want string
	}{
		{
			name: "final_answer without content",
			resp: StructuredResponse{Action: ActionFinalAnswer},
			want: "non-empty 'content'",
		},
		{
			name: "call_tool without tool_name",
			resp: StructuredResponse{Action: ActionCallTool, ToolArgs: map[string]any{"a": 1}},
			want: "non-empty 'tool_name'",
		},
		{
			name: "delegate without target",
			resp: StructuredResponse{Action: ActionDelegate, DelegatedTask: "t"},
			want: "non-empty 'target_agent'",
		},
		{
			name: "delegate without task",
			resp: StructuredResponse{Action: ActionDelegate, TargetAgent: "child"},
			want: "non-empty 'delegated_task'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			var sv *SchemaViolationError
			require.ErrorAs(t, err, &sv)
			assert.Contains(t, sv.Detail, tt.want)
		})
	}
}

func TestValidateRejectsCrossActionFields(t *testing.T) {
	resp := StructuredResponse{
		Action:   ActionFinalAnswer,
		Content:  "4",
		ToolName: "calculator",
	}
	err := resp.Validate()
	var sv *SchemaViolationError
	require.ErrorAs(t, err, &sv)
	assert.Contains(t, sv.Detail, "must not carry")

	resp = StructuredResponse{
		Action:      ActionCallTool,
		ToolName:    "calculator",
		TargetAgent: "child",
	}
	assert.True(t, errors.As(resp.Validate(), &sv))
}

func TestResponseSchemaShape(t *testing.T) {
	schema := ResponseSchema()
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"reasoning", "action", "content", "tool_name", "tool_args", "target_agent", "delegated_task"} {
		assert.Contains(t, props, field)
	}

	action, ok := props["action"].(map[string]any)
	require.True(t, ok)
	enum, ok := action["enum"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"final_answer", "call_tool", "delegate"}, enum)

	// Built once, shared.
	assert.Equal(t, schema, ResponseSchema())
}
