package api

import (
	"net/http"

	"github.com/JaimeStill/agent-hub/internal/agents"
	"github.com/JaimeStill/agent-hub/internal/chat"
	"github.com/JaimeStill/agent-hub/internal/chatlogs"
	"github.com/JaimeStill/agent-hub/internal/metalogs"
	"github.com/JaimeStill/agent-hub/internal/registry"
	"github.com/JaimeStill/agent-hub/pkg/openapi"
	"github.com/JaimeStill/agent-hub/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, basePath string, runtime *Runtime, domain *Domain) {
	agentsHandler := agents.NewHandler(domain.Agents, runtime.Logger, runtime.Pagination, runtime.MaxBodySize)
	chatHandler := chat.NewHandler(domain.Chat, runtime.Logger, runtime.MaxBodySize)
	chatLogsHandler := chatlogs.NewHandler(domain.ChatLogs, runtime.Logger)
	metaLogsHandler := metalogs.NewHandler(domain.MetaLogs, runtime.Logger, runtime.Pagination)
	registryHandler := registry.NewHandler(runtime.Registry, runtime.Logger)

	routes.Register(
		mux,
		basePath,
		spec,
		agentsHandler.Routes(),
		chatHandler.Routes(),
		chatLogsHandler.Routes(),
		metaLogsHandler.Routes(),
		registryHandler.Routes(),
	)
}
