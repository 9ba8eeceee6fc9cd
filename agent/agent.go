package agent

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/hupe1980/orchestrai/core"
	"github.com/hupe1980/orchestrai/logging"
	"github.com/hupe1980/orchestrai/model"
	"github.com/hupe1980/orchestrai/tool"
)

// DefaultMaxTurns bounds a conversation run unless overridden per agent.
const DefaultMaxTurns = 10

// Options configure an Agent instance. Use functional options with New to
// override defaults.
type Options struct {
	// Description is shown to parent agents choosing a delegation target.
	Description string
	// Tools registered at construction. More can be added via RegisterTool.
	Tools []tool.Tool
	// Parent declares this agent as a child of Parent, enabling Parent to
	// delegate to it.
	Parent *Agent
	// MaxTurns bounds model-call/dispatch cycles per RunConversation.
	MaxTurns int
	// Logger receives structured events from the conversation loop.
	Logger logging.Logger
}

// Agent is a conversational actor: role instructions, its own history, a
// tool registry and optional children it may delegate to. Parent and child
// links are stored as names and resolved through the Manager at use time, so
// an agent never owns another agent.
//
// An agent supports at most one active conversation at a time; concurrent
// RunConversation calls are serialized.
type Agent struct {
	name        string
	role        string
	description string
	model       model.Model
	manager     *Manager
	tools       *tool.Registry
	history     *core.ConversationHistory
	maxTurns    int
	logger      logging.Logger

	runMu sync.Mutex // serializes RunConversation

	mu         sync.Mutex // guards parentName / childNames
	parentName string
	childNames []string
}

// New constructs an agent and registers it with the manager. If a parent is
// declared the new agent is attached as its child. Construction fails when
// the name is already taken or a tool name collides.
func New(name, role string, m model.Model, manager *Manager, optFns ...func(o *Options)) (*Agent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}
	if m == nil {
		return nil, fmt.Errorf("agent %q requires a model", name)
	}
	if manager == nil {
		return nil, fmt.Errorf("agent %q requires a manager", name)
	}

	opts := Options{
		Description: fmt.Sprintf("Agent %s", name),
		MaxTurns:    DefaultMaxTurns,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}

	a := &Agent{
		name:        name,
		role:        role,
		description: opts.Description,
		model:       m,
		manager:     manager,
		tools:       tool.NewRegistry(),
		maxTurns:    opts.MaxTurns,
		logger:      opts.Logger,
	}

	for _, t := range opts.Tools {
		if err := a.tools.Register(t); err != nil {
			return nil, fmt.Errorf("agent %q: %w", name, err)
		}
	}

	a.history = core.NewConversationHistory(a.buildSystemMessage())

	if err := manager.Register(a); err != nil {
		return nil, err
	}

	if opts.Parent != nil {
		if err := opts.Parent.AttachChild(a); err != nil {
			manager.Unregister(name)
			return nil, err
		}
	}

	return a, nil
}

// Name returns the agent's unique name.
func (a *Agent) Name() string { return a.name }

// Role returns the agent's role instruction.
func (a *Agent) Role() string { return a.role }

// Description returns the description shown to delegating parents.
func (a *Agent) Description() string { return a.description }

// History returns the agent's owned conversation history.
func (a *Agent) History() *core.ConversationHistory { return a.history }

// Tools returns the agent's tool registry.
func (a *Agent) Tools() *tool.Registry { return a.tools }

// MaxTurns returns the per-conversation turn budget.
func (a *Agent) MaxTurns() int { return a.maxTurns }

// Parent returns the name of the declared parent, if any.
func (a *Agent) Parent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.parentName
}

// Children returns a copy of the declared child names.
func (a *Agent) Children() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	children := make([]string, len(a.childNames))
	copy(children, a.childNames)
	return children
}

// HasChild reports whether name is a declared child of this agent.
func (a *Agent) HasChild(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo.Contains(a.childNames, name)
}

// RegisterTool adds a tool to the agent's registry and refreshes the system
// prompt so the model sees the new capability.
func (a *Agent) RegisterTool(t tool.Tool) error {
	if err := a.tools.Register(t); err != nil {
		return err
	}
	a.history.AddSystem(a.buildSystemMessage())
	return nil
}

// AttachChild declares child as a delegation target of this agent, sets the
// back-reference on the child, and refreshes the system prompt so the model
// learns about the new delegate.
func (a *Agent) AttachChild(child *Agent) error {
	if child == nil {
		return fmt.Errorf("agent %q: cannot attach nil child", a.name)
	}
	if child.name == a.name {
		return fmt.Errorf("agent %q cannot be its own child", a.name)
	}

	a.mu.Lock()
	if lo.Contains(a.childNames, child.name) {
		a.mu.Unlock()
		return fmt.Errorf("agent %q already has child %q", a.name, child.name)
	}
	a.childNames = append(a.childNames, child.name)
	a.mu.Unlock()

	child.mu.Lock()
	child.parentName = a.name
	child.mu.Unlock()

	a.logger.Debug("agent.child.attached", "agent", a.name, "child", child.name)
	a.history.AddSystem(a.buildSystemMessage())
	return nil
}

// SetSystemMessage replaces the system instruction, overriding the generated
// prompt.
func (a *Agent) SetSystemMessage(content string) {
	a.history.AddSystem(content)
}

// buildSystemMessage renders the agent's role, tool inventory and delegation
// targets into the system instruction the model sees every turn.
func (a *Agent) buildSystemMessage() string {
	childInfo := "none"
	children := a.Children()
	if len(children) > 0 {
		descs := lo.Map(children, func(name string, _ int) string {
			if child, ok := a.manager.Get(name); ok {
				return fmt.Sprintf("%s (%s)", name, child.Description())
			}
			return name
		})
		childInfo = strings.Join(descs, ", ")
	}

	return fmt.Sprintf(
		"Role: %s\n"+
			"Tools:\n  %s\n\n"+
			"Respond with exactly one action per turn: 'final_answer' to answer the user, "+
			"'call_tool' with 'tool_name' and 'tool_args' to use a tool, or "+
			"'delegate' with 'target_agent' and 'delegated_task' to hand a sub-task to a child agent.\n"+
			"Child agents: %s.",
		a.role, a.tools.Describe(), childInfo)
}
