package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// AgentOptions configures a Client backed by a go-agents provider
// (ollama, azure). APIKey is sent as the provider token.
type AgentOptions struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
	Timeout  time.Duration
	Options  map[string]any
}

type agentClient struct {
	opts   AgentOptions
	logger *slog.Logger
}

// NewAgentClient creates a Client that builds a go-agents agent per call.
func NewAgentClient(opts AgentOptions, logger *slog.Logger) Client {
	return &agentClient{
		opts:   opts,
		logger: logger.With("system", "llm", "provider", opts.Provider),
	}
}

func (c *agentClient) Complete(ctx context.Context, req Request) (string, error) {
	doc := agentConfigDoc(c.opts, req)

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode agent config: %w", err)
	}

	cfg := agtconfig.DefaultAgentConfig()
	var userCfg agtconfig.AgentConfig
	if err := json.Unmarshal(raw, &userCfg); err != nil {
		return "", fmt.Errorf("decode agent config: %w", err)
	}
	cfg.Merge(&userCfg)

	a, err := agent.New(&cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	system, prompt := SplitMessages(req.Messages)
	opts := map[string]any{}
	if system != "" {
		opts["system_prompt"] = system
	}

	start := time.Now()
	resp, err := a.Chat(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	content := resp.Content()
	c.logger.Debug("completion received", "model", modelName(c.opts, req), "duration", time.Since(start))

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// SplitMessages joins system messages into one system prompt and the
// remaining messages into one prompt, each separated by a blank line.
func SplitMessages(msgs []Message) (system, prompt string) {
	var sys, rest []string
	for _, m := range msgs {
		if m.Content == "" {
			continue
		}
		if m.Role == RoleSystem {
			sys = append(sys, m.Content)
			continue
		}
		rest = append(rest, m.Content)
	}
	return strings.Join(sys, "\n\n"), strings.Join(rest, "\n\n")
}

func agentConfigDoc(o AgentOptions, req Request) map[string]any {
	options := make(map[string]any, len(o.Options)+1)
	for k, v := range o.Options {
		options[k] = v
	}

	key := req.APIKey
	if key == "" {
		key = o.APIKey
	}
	if key != "" {
		options["token"] = key
	}

	provider := map[string]any{
		"name":     o.Provider,
		"base_url": o.BaseURL,
		"model":    map[string]any{"name": modelName(o, req)},
	}
	if len(options) > 0 {
		provider["options"] = options
	}

	doc := map[string]any{
		"name":     "agent-hub",
		"provider": provider,
	}
	if o.Timeout > 0 {
		doc["client"] = map[string]any{"timeout": o.Timeout.String()}
	}
	return doc
}

func modelName(o AgentOptions, req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return o.Model
}
