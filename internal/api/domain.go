package api

import (
	"github.com/JaimeStill/agent-hub/internal/agents"
	"github.com/JaimeStill/agent-hub/internal/chat"
	"github.com/JaimeStill/agent-hub/internal/chatlogs"
	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/internal/metalogs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Agents   agents.System
	ChatLogs chatlogs.System
	MetaLogs metalogs.System
	Chat     *chat.Orchestrator
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	chatLogsSys := chatlogs.New(db, runtime.Logger)
	metaLogsSys := metalogs.New(db, runtime.Logger, runtime.Pagination)

	agentsSys := agents.New(
		db,
		runtime.Registry,
		runtime.Logger,
		runtime.Pagination,
		chatLogsSys,
	)

	orchestrator := chat.New(
		chat.Deps{
			Agents:     agentsSys,
			Transcript: chatLogsSys,
			Audit:      metaLogsSys,
			Invoker:    runtime.Invoker,
			Catalog:    runtime.Registry,
			LLM:        runtime.LLM,
		},
		chat.Config{
			Summarize: cfg.Chat.SummarizeEnabled(),
			Timeout:   cfg.Chat.TimeoutDuration(),
		},
		runtime.Logger,
	)

	return &Domain{
		Agents:   agentsSys,
		ChatLogs: chatLogsSys,
		MetaLogs: metaLogsSys,
		Chat:     orchestrator,
	}
}
