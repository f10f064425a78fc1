package tools

import (
	"context"
	"fmt"

	"github.com/JaimeStill/agent-hub/internal/llm"
	"github.com/JaimeStill/agent-hub/pkg/decode"
)

// GroqChatName is the handler name of the pass-through LLM chat tool.
const GroqChatName = "groqChat"

// GroqChatConfig is the agent-level configuration of the chat tool.
type GroqChatConfig struct {
	SystemPrompt string `json:"systemPrompt,omitempty" jsonschema:"description=System prompt for the secondary model"`
	APIKey       string `json:"apiKey,omitempty" jsonschema:"description=LLM API key override"`
	Model        string `json:"model,omitempty" jsonschema:"description=LLM model override"`
}

// GroqChat forwards args.message to the LLM and returns the reply verbatim.
type GroqChat struct {
	llm llm.Client
}

func NewGroqChat(client llm.Client) *GroqChat {
	return &GroqChat{llm: client}
}

func (g *GroqChat) Name() string { return GroqChatName }

func (g *GroqChat) Invoke(ctx context.Context, config, args map[string]any) (string, error) {
	cfg, err := decode.FromMap[GroqChatConfig](config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	message, err := stringArg(args, "message")
	if err != nil {
		return "", err
	}

	reply, err := g.llm.Complete(ctx, llm.Request{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Messages: llm.Prompt(cfg.SystemPrompt, message),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reply, nil
}
