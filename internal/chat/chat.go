// Package chat relays a user message to the LLM on behalf of an agent,
// dispatching at most one tool call and recording both turns.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-hub/internal/agents"
	"github.com/JaimeStill/agent-hub/internal/chatlogs"
	"github.com/JaimeStill/agent-hub/internal/llm"
	"github.com/JaimeStill/agent-hub/internal/metalogs"
)

// AgentFinder resolves the agent a chat targets.
type AgentFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error)
}

// Transcript appends chat turns.
type Transcript interface {
	Append(ctx context.Context, agentID uuid.UUID, role chatlogs.Role, message string) (*chatlogs.Entry, error)
}

// AuditLog records how each reply was produced.
type AuditLog interface {
	Record(ctx context.Context, cmd metalogs.RecordCommand) (*metalogs.Entry, error)
}

// ToolInvoker dispatches a tool call to the named handler.
type ToolInvoker interface {
	Invoke(ctx context.Context, handler string, config, args map[string]any) (string, error)
}

// ToolCatalog renders the prompt line for a registry key.
type ToolCatalog interface {
	Describe(key string) (string, bool)
}

// Config controls the orchestrator.
type Config struct {
	Summarize bool
	// Timeout bounds every outbound call of one request together.
	// Zero disables the bound.
	Timeout time.Duration
}

// Deps groups the collaborators of an Orchestrator.
type Deps struct {
	Agents     AgentFinder
	Transcript Transcript
	Audit      AuditLog
	Invoker    ToolInvoker
	Catalog    ToolCatalog
	LLM        llm.Client
}

// Orchestrator runs the chat state machine.
type Orchestrator struct {
	deps   Deps
	cfg    Config
	logger *slog.Logger
}

func New(deps Deps, cfg Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		deps:   deps,
		cfg:    cfg,
		logger: logger.With("system", "chat"),
	}
}

// HandleChat answers message on behalf of agent agentID and returns the
// final reply. Only a failed primary LLM call aborts the exchange once the
// user turn is recorded; tool and summarization failures become the reply.
func (o *Orchestrator) HandleChat(ctx context.Context, agentID uuid.UUID, message string) (string, error) {
	agent, err := o.deps.Agents.Find(ctx, agentID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(message) == "" {
		return "", ErrInvalidInput
	}

	if _, err := o.deps.Transcript.Append(ctx, agent.ID, chatlogs.RoleUser, message); err != nil {
		return "", fmt.Errorf("record user turn: %w", err)
	}

	callCtx, cancel := o.callContext(ctx)
	defer cancel()

	raw, err := o.deps.LLM.Complete(callCtx, llm.Request{
		Messages: llm.Prompt(SystemPrompt(agent, o.deps.Catalog), message),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	meta := metalogs.Metadata{Raw: raw}
	reply := raw

	if d, ok := ParseDirective(raw); ok {
		reply = o.dispatch(callCtx, agent, d, &meta)
	}

	if o.cfg.Summarize {
		reply, meta.Summarized = o.summarize(callCtx, message, reply)
	}

	if _, err := o.deps.Audit.Record(ctx, metalogs.RecordCommand{
		AgentID:  agent.ID,
		Query:    message,
		Response: reply,
		Metadata: meta,
	}); err != nil {
		return "", fmt.Errorf("record meta log: %w", err)
	}

	if _, err := o.deps.Transcript.Append(ctx, agent.ID, chatlogs.RoleAgent, reply); err != nil {
		return "", fmt.Errorf("record agent turn: %w", err)
	}

	o.logger.Info("chat completed",
		"agent_id", agent.ID,
		"tool", meta.ToolKey,
		"tool_error", meta.ToolError != "",
		"summarized", meta.Summarized,
	)
	return reply, nil
}

func (o *Orchestrator) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.cfg.Timeout)
}

// dispatch resolves d against the agent's attached tools and returns the
// working reply. Failures are folded into the reply text.
func (o *Orchestrator) dispatch(ctx context.Context, agent *agents.Agent, d Directive, meta *metalogs.Metadata) string {
	meta.ToolKey = d.ToolKey
	meta.ToolArgs = d.ToolArgs

	entry, ok := agent.Tool(d.ToolKey)
	if !ok {
		meta.ToolError = "tool not configured"
		return fmt.Sprintf("Tool %q is not configured for this agent.", d.ToolKey)
	}
	meta.ToolHandler = entry.HandlerName()

	result, err := o.deps.Invoker.Invoke(ctx, entry.HandlerName(), entry.Config, d.ToolArgs)
	if err != nil {
		o.logger.Warn("tool failed", "agent_id", agent.ID, "tool", d.ToolKey, "handler", entry.HandlerName(), "error", err)
		meta.ToolError = err.Error()
		return fmt.Sprintf("tool %s failed: %v", d.ToolKey, err)
	}

	meta.ToolResult = result
	return result
}

// summarize asks the LLM to condense draft. The draft is kept when the call
// fails or returns nothing.
func (o *Orchestrator) summarize(ctx context.Context, message, draft string) (string, bool) {
	summary, err := o.deps.LLM.Complete(ctx, llm.Request{
		Messages: llm.Prompt(summaryPrompt, summaryInput(message, draft)),
	})
	if err != nil {
		o.logger.Warn("summarization failed", "error", err)
		return draft, false
	}
	if strings.TrimSpace(summary) == "" {
		return draft, false
	}
	return summary, true
}
