package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/JaimeStill/agent-hub/pkg/decode"
)

// SlackNotifierName is the handler name of the Slack incoming-webhook notifier.
const SlackNotifierName = "slackNotifier"

// SlackConfig is the agent-level configuration of the Slack notifier.
type SlackConfig struct {
	WebhookURL string `json:"webhookUrl" validate:"required,url" jsonschema:"description=Slack incoming webhook URL"`
}

// SlackResult is the JSON document returned by the notifier.
type SlackResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

// Slack result statuses.
const (
	SlackStatusSuccess = "success"
	SlackStatusError   = "error"
)

// SlackNotifier posts args.text to a configured webhook.
type SlackNotifier struct {
	transport Transport
}

func NewSlackNotifier(transport Transport) *SlackNotifier {
	return &SlackNotifier{transport: transport}
}

func (s *SlackNotifier) Name() string { return SlackNotifierName }

// Invoke reports a non-200 webhook response as a result with status "error".
// Only transport failures fail the invocation.
func (s *SlackNotifier) Invoke(ctx context.Context, config, args map[string]any) (string, error) {
	cfg, err := decode.FromMap[SlackConfig](config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if cfg.WebhookURL == "" {
		return "", fmt.Errorf("%w: webhookUrl is required", ErrConfiguration)
	}

	text, err := stringArg(args, "text")
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.transport.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: slack webhook: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	result := SlackResult{
		Status:  SlackStatusSuccess,
		Message: "Your message has been sent to Slack!",
		Text:    text,
	}
	if resp.StatusCode != http.StatusOK {
		result.Status = SlackStatusError
		result.Message = fmt.Sprintf("Slack webhook failed: %s", resp.Status)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
