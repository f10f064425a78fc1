package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Options configures the OpenAI-compatible client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type client struct {
	opts       Options
	httpClient *http.Client
	fallback   *openai.Client
	logger     *slog.Logger
}

// New creates a Client backed by go-openai. The default API key client is
// built once; per-request keys get a client of their own.
func New(opts Options, logger *slog.Logger) Client {
	c := &client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger.With("system", "llm"),
	}
	if opts.APIKey != "" {
		c.fallback = c.newClient(opts.APIKey)
	}
	return c
}

func (c *client) Complete(ctx context.Context, req Request) (string, error) {
	api, err := c.resolve(req.APIKey)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = c.opts.Model
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	start := time.Now()
	resp, err := api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.logger.Debug(
		"completion received",
		"model", model,
		"choices", len(resp.Choices),
		"total_tokens", resp.Usage.TotalTokens,
		"duration", time.Since(start),
	)

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *client) resolve(apiKey string) (*openai.Client, error) {
	if apiKey != "" && apiKey != c.opts.APIKey {
		return c.newClient(apiKey), nil
	}
	if c.fallback == nil {
		return nil, ErrMissingCredentials
	}
	return c.fallback, nil
}

func (c *client) newClient(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if c.opts.BaseURL != "" {
		cfg.BaseURL = c.opts.BaseURL
	}
	cfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(cfg)
}
