package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/hupe1980/orchestrai/core"
	"github.com/hupe1980/orchestrai/model"
	"github.com/hupe1980/orchestrai/tool"
)

// State identifies the phase of a conversation run.
type State int

const (
	// StateAwaitingResponse is waiting for the model's structured response.
	StateAwaitingResponse State = iota
	// StateDispatching is executing the declared action.
	StateDispatching
	// StateTerminated is the terminal success state.
	StateTerminated
	// StateFailed is the terminal error state.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingResponse:
		return "AWAITING_RESPONSE"
	case StateDispatching:
		return "DISPATCHING"
	case StateTerminated:
		return "TERMINATED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// chainKey carries the active delegation chain on the context so re-entrant
// delegation can be detected across any number of hops.
type chainKey struct{}

func activeChain(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withActiveAgent(ctx context.Context, name string) context.Context {
	chain := activeChain(ctx)
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return context.WithValue(ctx, chainKey{}, append(next, name))
}

// RunConversation appends message as a user turn and drives the
// conversation loop until the model produces a final answer, the turn
// budget is exhausted, or a structural failure occurs.
//
// Recoverable failures (tool errors, delegation failures) are fed back into
// the history as error results so the model can re-plan; schema violations,
// unknown tools or delegation targets, transport errors and the agent's own
// turn-limit breach terminate the loop with a typed error from the core
// package.
//
// The agent's history persists across calls, so subsequent invocations
// continue the same conversation unless the caller resets it.
func (a *Agent) RunConversation(ctx context.Context, message string) (string, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	convID := core.NewID()
	ctx = withActiveAgent(ctx, a.name)
	limiter := core.NewTurnLimiter(a.maxTurns)

	a.history.AddUser(message)
	a.logger.Info("conversation.start", "agent", a.name, "conversation_id", convID)

	state := StateAwaitingResponse
	var (
		resp *core.StructuredResponse
		raw  string
	)

	for {
		switch state {
		case StateAwaitingResponse:
			if err := limiter.Increment(); err != nil {
				a.logger.Error("conversation.turn_limit_exceeded",
					"agent", a.name,
					"conversation_id", convID,
					"max_turns", a.maxTurns,
				)
				return "", &core.TurnLimitError{Agent: a.name, MaxTurns: a.maxTurns, Turns: limiter.Count()}
			}

			var err error
			raw, resp, err = a.generate(ctx, convID, limiter.Count())
			if err != nil {
				return "", err
			}
			state = StateDispatching

		case StateDispatching:
			final, answer, err := a.dispatch(ctx, convID, resp, raw)
			if err != nil {
				return "", err
			}
			if final {
				a.logger.Info("conversation.complete",
					"agent", a.name,
					"conversation_id", convID,
					"turns", limiter.Count(),
				)
				return answer, nil
			}
			state = StateAwaitingResponse
		}
	}
}

// generate sends the full history to the model and parses the structured
// response. Transport failures and schema violations are fatal to the loop.
func (a *Agent) generate(ctx context.Context, convID string, turn int) (string, *core.StructuredResponse, error) {
	a.logger.Debug("conversation.turn.start",
		"agent", a.name,
		"conversation_id", convID,
		"turn", turn,
	)

	req := model.Request{
		Messages:   a.history.Messages(),
		Schema:     core.ResponseSchema(),
		SchemaName: core.ResponseSchemaName,
	}

	start := time.Now()
	resp, err := a.model.Generate(ctx, req)
	if err != nil {
		a.logger.Error("model.call.error",
			"agent", a.name,
			"conversation_id", convID,
			"model", a.model.Info().Name,
			"error", err.Error(),
		)
		return "", nil, &core.TransportError{Agent: a.name, Err: err}
	}

	a.logger.Debug("model.call.success",
		"agent", a.name,
		"conversation_id", convID,
		"model", a.model.Info().Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	parsed, err := core.ParseStructuredResponse([]byte(resp.Text))
	if err != nil {
		var sv *core.SchemaViolationError
		if errors.As(err, &sv) {
			sv.Agent = a.name
		}
		a.logger.Error("conversation.schema_violation",
			"agent", a.name,
			"conversation_id", convID,
			"error", err.Error(),
		)
		return "", nil, err
	}

	if parsed.Reasoning != "" {
		a.logger.Info("conversation.reasoning",
			"agent", a.name,
			"conversation_id", convID,
			"action", string(parsed.Action),
			"reasoning", parsed.Reasoning,
		)
	}

	return resp.Text, parsed, nil
}

// dispatch executes the declared action. It returns final=true with the
// answer on termination, or an error for validation-class failures. Tool and
// delegation failures are appended as error results and the loop continues.
func (a *Agent) dispatch(ctx context.Context, convID string, resp *core.StructuredResponse, raw string) (bool, string, error) {
	switch resp.Action {
	case core.ActionFinalAnswer:
		a.history.AddAssistant(resp.Content)
		return true, resp.Content, nil

	case core.ActionCallTool:
		t, ok := a.tools.Get(resp.ToolName)
		if !ok {
			a.logger.Error("tool.unknown",
				"agent", a.name,
				"conversation_id", convID,
				"tool", resp.ToolName,
			)
			return false, "", &core.UnknownTargetError{Agent: a.name, Kind: "tool", Name: resp.ToolName}
		}
		a.history.AddAssistant(raw)
		a.history.AddToolResult(resp.ToolName, a.executeTool(ctx, convID, t, resp.ToolArgs))
		return false, "", nil

	case core.ActionDelegate:
		if !a.HasChild(resp.TargetAgent) {
			a.logger.Error("delegation.unknown_target",
				"agent", a.name,
				"conversation_id", convID,
				"target", resp.TargetAgent,
			)
			return false, "", &core.UnknownTargetError{Agent: a.name, Kind: "agent", Name: resp.TargetAgent}
		}
		child, ok := a.manager.Get(resp.TargetAgent)
		if !ok {
			// Declared but unregistered, e.g. unregistered after attach.
			return false, "", &core.UnknownTargetError{Agent: a.name, Kind: "agent", Name: resp.TargetAgent}
		}
		a.history.AddAssistant(raw)
		a.history.AddToolResult(resp.TargetAgent, a.delegate(ctx, convID, child, resp.DelegatedTask))
		return false, "", nil

	default:
		// Unreachable: parsing rejects unknown actions before dispatch.
		return false, "", &core.SchemaViolationError{Agent: a.name, Detail: fmt.Sprintf("unhandled action %q", resp.Action)}
	}
}

// executeTool invokes a tool and converts any failure into an error result
// the model can see. The loop never fails due to tool misbehavior.
func (a *Agent) executeTool(ctx context.Context, convID string, t tool.Tool, args map[string]any) string {
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	result, err := t.Call(ctx, args)
	if err != nil {
		a.logger.Warn("tool.call.error",
			"agent", a.name,
			"conversation_id", convID,
			"tool", t.Name(),
			"error", err.Error(),
		)
		return fmt.Sprintf("tool error: %v", err)
	}

	a.logger.Info("tool.call.success",
		"agent", a.name,
		"conversation_id", convID,
		"tool", t.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result
}

// delegate runs the task through the child's own conversation loop and
// returns its final answer, or an error result when the child fails or is
// already active on the current delegation chain.
func (a *Agent) delegate(ctx context.Context, convID string, child *Agent, task string) string {
	if lo.Contains(activeChain(ctx), child.name) {
		a.logger.Warn("delegation.reentrant",
			"agent", a.name,
			"conversation_id", convID,
			"target", child.name,
			"chain", activeChain(ctx),
		)
		return fmt.Sprintf("delegation error: agent %q is already active on this delegation chain", child.name)
	}

	a.logger.Info("delegation.start",
		"agent", a.name,
		"conversation_id", convID,
		"target", child.name,
	)

	start := time.Now()
	answer, err := child.RunConversation(ctx, task)
	if err != nil {
		a.logger.Warn("delegation.failed",
			"agent", a.name,
			"conversation_id", convID,
			"target", child.name,
			"error", err.Error(),
		)
		return fmt.Sprintf("delegation to %s failed: %v", child.name, err)
	}

	a.logger.Info("delegation.success",
		"agent", a.name,
		"conversation_id", convID,
		"target", child.name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return answer
}
