// Package orchestrai provides a high-level façade over the agent, tool and
// model packages for building hierarchical networks of LLM-backed agents.
// Most applications interact with this package by:
//  1. Creating an OrchestrAI via New() (optionally supplying a structured logger)
//  2. Constructing agents with NewAgent, declaring tools and parent/child links
//  3. Driving a top-level agent with RunConversation
//
// The façade owns the process-wide agent Manager and propagates its logger
// into every agent it constructs. Defaults are safe for local development
// and testing; production deployments typically supply a logging.Logger
// backed by slog.
package orchestrai

import (
	"context"
	"fmt"

	"github.com/hupe1980/orchestrai/agent"
	"github.com/hupe1980/orchestrai/logging"
	"github.com/hupe1980/orchestrai/model"
)

// Options configure the OrchestrAI instance.
type Options struct {
	// Logger receives structured events from every agent constructed
	// through this instance. Defaults to NoOpLogger.
	Logger logging.Logger
}

// OrchestrAI aggregates the agent registry and shared configuration.
type OrchestrAI struct {
	manager *agent.Manager
	logger  logging.Logger
}

// New creates a new OrchestrAI instance with optional overrides.
func New(optFns ...func(o *Options)) *OrchestrAI {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &OrchestrAI{
		manager: agent.NewManager(),
		logger:  opts.Logger,
	}
}

// Manager returns the underlying agent registry.
func (o *OrchestrAI) Manager() *agent.Manager { return o.manager }

// NewAgent constructs an agent registered with this instance's manager and
// wired to its logger. Per-agent options may override both.
func (o *OrchestrAI) NewAgent(name, role string, m model.Model, optFns ...func(ao *agent.Options)) (*agent.Agent, error) {
	fns := make([]func(ao *agent.Options), 0, len(optFns)+1)
	fns = append(fns, func(ao *agent.Options) { ao.Logger = o.logger })
	fns = append(fns, optFns...)
	return agent.New(name, role, m, o.manager, fns...)
}

// RunConversation resolves the named agent and drives its conversation loop
// with the given message, returning the final textual answer.
func (o *OrchestrAI) RunConversation(ctx context.Context, agentName, message string) (string, error) {
	a, ok := o.manager.Get(agentName)
	if !ok {
		return "", fmt.Errorf("agent %q not registered", agentName)
	}
	return a.RunConversation(ctx, message)
}
