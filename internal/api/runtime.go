package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/agent-hub/internal/config"
	"github.com/JaimeStill/agent-hub/internal/infrastructure"
	"github.com/JaimeStill/agent-hub/internal/llm"
	"github.com/JaimeStill/agent-hub/internal/registry"
	"github.com/JaimeStill/agent-hub/internal/tools"
	"github.com/JaimeStill/agent-hub/pkg/pagination"
)

// Runtime extends Infrastructure with API-scoped collaborators.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	MaxBodySize int64
	Registry    *registry.Registry
	LLM         llm.Client
	Invoker     *tools.Invoker
}

// NewRuntime creates an API runtime with a module-scoped logger, the tool
// catalog, the LLM client, and an invoker with every tool handler.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	client := newLLMClient(&cfg.LLM, logger)

	transport := tools.Transport{
		Client:          &http.Client{Timeout: cfg.Tools.TimeoutDuration()},
		MaxResponseSize: cfg.Tools.MaxResponseSizeBytes(),
	}

	invoker := tools.NewInvoker(
		tools.NewGitHubSummarizer(transport, cfg.GitHub.BaseURL, cfg.GitHub.Token, client),
		tools.NewSlackNotifier(transport),
		tools.NewGroqChat(client),
		tools.NewHTTPCaller(transport),
	)

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
		},
		Pagination:  cfg.API.Pagination,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		Registry:    registry.Default(),
		LLM:         client,
		Invoker:     invoker,
	}
}

func newLLMClient(cfg *config.LLMConfig, logger *slog.Logger) llm.Client {
	if cfg.Provider == config.ProviderOpenAI {
		return llm.New(llm.Options{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.TimeoutDuration(),
		}, logger)
	}
	return llm.NewAgentClient(llm.AgentOptions{
		Provider: cfg.Provider,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.TimeoutDuration(),
		Options:  cfg.ProviderOptions,
	}, logger)
}
