package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/orchestrai/internal/util"
)

// Tool defines the interface for extending agent capabilities with external
// functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions (snake_case names recommended)
//   - Define a proper JSON schema for parameters
//   - Return errors rather than panicking; the loop converts both into
//     results the model can see, but errors carry better detail
//   - Be safe for reuse across conversations
type Tool interface {
	// Name returns the unique identifier for this tool within an agent's registry.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is exposed to the model as part of the system prompt.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with arguments parsed from the model's
	// structured response. The result string is appended to the
	// conversation history.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// ValidationError reports arguments rejected by a tool's parameter schema.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
